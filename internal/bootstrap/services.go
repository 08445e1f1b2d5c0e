package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/medtrack/medtrack-api/config"
	"github.com/medtrack/medtrack-api/internal/data"
	"github.com/medtrack/medtrack-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth       *service.AuthService
	Identity   *service.IdentityService
	Users      *service.UserService
	Records    *service.RecordService
	ValueTypes *service.ValueTypeService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories and services from the shared connections.
func NewServices(deps ServiceDeps) (ServiceContainer, error) {
	userRepo := data.NewUserRepo(deps.DB)
	recordRepo := data.NewRecordRepo(deps.DB)
	valueTypeRepo := data.NewValueTypeRepo(deps.DB)

	identity := service.NewIdentityService(service.IdentityServiceOptions{Users: userRepo})

	auth, err := BuildAuthService(AuthConfig{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		Identity:    identity,
		Logger:      deps.Logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth service: %w", err)
	}

	return ServiceContainer{
		Auth:     auth,
		Identity: identity,
		Users: service.NewUserService(service.UserServiceOptions{
			Users:      userRepo,
			ValueTypes: valueTypeRepo,
		}),
		Records: service.NewRecordService(service.RecordServiceOptions{
			Records:    recordRepo,
			ValueTypes: valueTypeRepo,
		}),
		ValueTypes: service.NewValueTypeService(service.ValueTypeServiceOptions{
			ValueTypes: valueTypeRepo,
		}),
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal arrives
// or the server fails. It owns graceful shutdown.
func Run(ctx context.Context, cfg *config.AppConfig, services ServiceContainer, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg,
		Services: services,
		Logger:   logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return ShutdownHTTPServer(ShutdownConfig{
			Context: context.Background(),
			Server:  server,
			Logger:  logger,
		})
	})

	return g.Wait()
}
