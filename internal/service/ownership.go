package service

import (
	"context"
	"errors"

	"github.com/Tomlord1122/task-manager/internal/repository"
)

// Owned is implemented by every record that only its owner may mutate.
type Owned interface {
	OwnerID() uint
}

// authorizeOwner loads the record with id and checks that subject owns it.
// A missing record is NotFound, someone else's record is Unauthorized and a
// failing lookup is BadRequest with failMsg.
func authorizeOwner[T Owned](ctx context.Context, load func(context.Context, uint) (T, error), id, subject uint, failMsg string) (T, error) {
	var zero T

	record, err := load(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return zero, notFound()
		}
		return zero, badRequest(failMsg, err)
	}

	if record.OwnerID() != subject {
		return zero, unauthorized(msgNotAllowed)
	}
	return record, nil
}
