package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Tomlord1122/task-manager/internal/auth"
	"github.com/Tomlord1122/task-manager/internal/config"
	"github.com/Tomlord1122/task-manager/internal/logger"
	"github.com/Tomlord1122/task-manager/internal/service"
)

// TokenVerifier turns a bearer token into its payload.
type TokenVerifier interface {
	Verify(token string) (*auth.Payload, error)
}

// HealthChecker reports the state of the database pool.
type HealthChecker interface {
	Health() map[string]string
}

// Dependencies are built in main and handed to the server as is.
type Dependencies struct {
	Config *config.Config
	Tasks  service.TaskService
	Users  service.UserService
	Auth   service.AuthService
	Tokens TokenVerifier
	DB     HealthChecker
	Log    *logrus.Logger
}

type Server struct {
	port        int
	cfg         *config.Config
	taskService service.TaskService
	userService service.UserService
	authService service.AuthService
	tokens      TokenVerifier
	db          HealthChecker
	log         *logrus.Logger
	httpLog     logrus.FieldLogger
	validate    *validator.Validate
	limiter     *ipRateLimiter
}

func New(deps Dependencies) *Server {
	s := &Server{
		port:        deps.Config.Port,
		cfg:         deps.Config,
		taskService: deps.Tasks,
		userService: deps.Users,
		authService: deps.Auth,
		tokens:      deps.Tokens,
		db:          deps.DB,
		log:         deps.Log,
		httpLog:     logger.HTTP(deps.Log),
		validate:    newValidator(),
	}
	if deps.Config.Limiter.Enabled {
		s.limiter = newIPRateLimiter(deps.Config.Limiter.RPS, deps.Config.Limiter.Burst)
	}
	return s
}

// NewServer wires the routes into an *http.Server listening on the
// configured port.
func NewServer(deps Dependencies) *http.Server {
	appServer := New(deps)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
