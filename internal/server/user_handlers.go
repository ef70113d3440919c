package server

import (
	"net/http"

	"github.com/Tomlord1122/task-manager/internal/service"
)

func (s *Server) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	page, ok := s.parsePagination(w, r)
	if !ok {
		return
	}

	users, err := s.userService.List(r.Context(), page)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

func (s *Server) getUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID provided")
		return
	}

	user, err := s.userService.GetByID(r.Context(), id)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

func (s *Server) createUserHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUserRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := s.userService.Create(r.Context(), req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

func (s *Server) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	id, ok := parseID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID provided")
		return
	}
	var req service.UpdateUserRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := s.userService.Update(r.Context(), id, sub, req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

func (s *Server) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	id, ok := parseID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID provided")
		return
	}

	resp, err := s.userService.Delete(r.Context(), id, sub)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}
