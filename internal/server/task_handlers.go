package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Tomlord1122/task-manager/internal/service"
)

func (s *Server) listTasksHandler(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	page, ok := s.parsePagination(w, r)
	if !ok {
		return
	}

	tasks, err := s.taskService.ListForOwner(r.Context(), sub, page)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

func (s *Server) getTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID provided")
		return
	}

	task, err := s.taskService.GetByID(r.Context(), id)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) filterTasksHandler(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	completed, err := strconv.Atoi(chi.URLParam(r, "completed"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "completed must be an integer")
		return
	}

	tasks, err := s.taskService.ListForOwnerByCompletion(r.Context(), sub, completed)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTaskHandler(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	var req service.CreateTaskRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	task, err := s.taskService.Create(r.Context(), sub, req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, task)
}

func (s *Server) updateTaskHandler(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	id, ok := parseID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID provided")
		return
	}
	var req service.UpdateTaskRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	task, err := s.taskService.Update(r.Context(), id, sub, req)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	sub, ok := subject(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	id, ok := parseID(r, "id")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID provided")
		return
	}

	resp, err := s.taskService.Delete(r.Context(), id, sub)
	if err != nil {
		s.respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}
