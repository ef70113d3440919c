package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)

	// The limiter keys on the socket peer, so it runs before RealIP rewrites
	// RemoteAddr from client supplied headers.
	if s.limiter != nil {
		r.Use(s.rateLimit)
	}

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: s.log, NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", s.rootHandler)
	r.Get("/health", s.healthHandler)

	r.Post("/auth", s.signInHandler)

	r.Route("/tasks", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/", s.listTasksHandler)
		r.Post("/", s.createTaskHandler)
		r.Get("/filter/{completed}", s.filterTasksHandler)
		r.Get("/{id}", s.getTaskHandler)
		r.Patch("/{id}", s.updateTaskHandler)
		r.Delete("/{id}", s.deleteTaskHandler)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.listUsersHandler)
		r.Post("/", s.createUserHandler)
		r.Get("/{id}", s.getUserHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Patch("/{id}", s.updateUserHandler)
			r.Delete("/{id}", s.deleteUserHandler)
		})
	})

	return r
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Task Manager API"})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}
