package server

import (
	"net/http"

	"github.com/Tomlord1122/task-manager/internal/service"
)

func (s *Server) signInHandler(w http.ResponseWriter, r *http.Request) {
	var req service.SignInRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := s.authService.SignIn(r.Context(), req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}
