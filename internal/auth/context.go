package auth

import "context"

type contextKey string

const payloadKey contextKey = "tokenPayload"

// WithPayload stores the verified token payload on the request context.
func WithPayload(ctx context.Context, p *Payload) context.Context {
	return context.WithValue(ctx, payloadKey, p)
}

// PayloadFrom returns the payload stored by WithPayload, if any.
func PayloadFrom(ctx context.Context) (*Payload, bool) {
	p, ok := ctx.Value(payloadKey).(*Payload)
	return p, ok && p != nil
}
