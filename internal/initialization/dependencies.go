package initialization

import (
	"context"
	"fmt"

	"github.com/taskloom/taskloom/internal/auth"
	"github.com/taskloom/taskloom/internal/config"
	"github.com/taskloom/taskloom/internal/controllers"
	"github.com/taskloom/taskloom/internal/managers"
	"github.com/taskloom/taskloom/internal/storage/mongodb"
	"github.com/taskloom/taskloom/internal/storage/postgres"
	"github.com/taskloom/taskloom/internal/storage/redis"
	"github.com/taskloom/taskloom/pkg/domain"

	"github.com/rs/zerolog/log"
)

// workflowStorage is the full persistence surface one backend flavor provides.
type workflowStorage interface {
	domain.WorkflowRepository
	domain.OAuthAccountRepository
	domain.APIKeyRepository
}

// Dependencies contains everything the HTTP server needs, wired per the
// configured storage backend.
type Dependencies struct {
	Config                        *config.Config
	SessionVerifier               auth.SessionVerifier
	WorkflowCredentialsController *controllers.WorkflowCredentialsController

	closeFuncs []func(ctx context.Context) error
}

// BuildDependencies creates and wires up all service dependencies.
func BuildDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	log.Info().Str("storage_backend", cfg.StorageBackend).Msg("Building service dependencies")

	deps := &Dependencies{Config: cfg}

	storage, err := deps.buildStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sessionStore, err := redis.NewSessionStore(redis.SessionStoreDeps{
		Context:  ctx,
		Address:  cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect session store: %w", err)
	}

	deps.closeFuncs = append(deps.closeFuncs, func(context.Context) error {
		return sessionStore.Close()
	})

	deps.SessionVerifier = auth.NewJWTSessionVerifier(cfg.SessionJWTSecret, sessionStore)

	statusManager := managers.NewCredentialStatusManager(managers.CredentialStatusManagerDependencies{
		OAuthAccountRepository: storage,
		APIKeyRepository:       storage,
	})

	deps.WorkflowCredentialsController = controllers.NewWorkflowCredentialsController(controllers.WorkflowCredentialsControllerDependencies{
		WorkflowRepository:  storage,
		RequirementsManager: managers.NewCredentialRequirementsManager(),
		StatusManager:       statusManager,
	})

	return deps, nil
}

func (d *Dependencies) buildStorage(ctx context.Context, cfg *config.Config) (workflowStorage, error) {
	switch cfg.StorageBackend {
	case config.StorageBackendPostgres:
		store, err := postgres.NewStore(postgres.StoreDeps{
			Context: ctx,
			DSN:     cfg.PostgresDSN,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect postgres storage: %w", err)
		}

		d.closeFuncs = append(d.closeFuncs, func(context.Context) error {
			store.Close()
			return nil
		})

		return store, nil
	case config.StorageBackendMongoDB:
		store, err := mongodb.NewStore(mongodb.StoreDeps{
			Context:      ctx,
			URI:          cfg.MongoURI,
			DatabaseName: cfg.MongoDatabase,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect mongodb storage: %w", err)
		}

		d.closeFuncs = append(d.closeFuncs, store.Close)

		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// Close releases every connection the container opened.
func (d *Dependencies) Close(ctx context.Context) {
	for _, closeFunc := range d.closeFuncs {
		if err := closeFunc(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to close dependency")
		}
	}
}
