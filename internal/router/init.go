package router

import (
	"github.com/lifesync/lifesync/internal/application"
	"github.com/lifesync/lifesync/internal/container"
	pginfra "github.com/lifesync/lifesync/internal/infrastructure/postgres"
	handlers "github.com/lifesync/lifesync/internal/interface/http"
	"github.com/lifesync/lifesync/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Call once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	bus := container.GetBus()

	tenants := pginfra.NewTenantRepository(pool)
	users := pginfra.NewUserRepository(pool)
	moodLogs := pginfra.NewMoodLogRepository(pool)
	challenges := pginfra.NewChallengeRepository(pool)
	badges := pginfra.NewBadgeRepository(pool)

	var indexer *application.UserIndexer
	if es := container.GetES(); es != nil {
		indexer = application.NewUserIndexer(es, cfg.ESUsersIndex, logger)
	}

	authSvc := application.NewAuthService(tenants, users, container.GetHasher(), container.GetJWT(), logger)
	authSvc.Notify = container.GetRabbitPub()
	authSvc.Indexer = indexer

	userSvc := application.NewUserService(users, badges, container.GetGCS(), cfg.GCSBucket, logger, indexer)
	moodSvc := application.NewMoodLogService(moodLogs, bus, logger)
	challengeSvc := application.NewChallengeService(challenges, users, bus, logger)
	analyticsSvc := application.NewAnalyticsService(moodLogs, users, container.GetRedis(), logger)

	gamification := application.NewGamificationService(users, badges, moodLogs, challenges, logger)
	gamification.Notify = container.GetRabbitPub()
	bus.Subscribe(gamification)

	jwt := container.GetJWT()
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewMoodLogModule(handlers.NewMoodLogHandler(moodSvc, logger), jwt))
	r.Add(modules.NewChallengeModule(handlers.NewChallengeHandler(challengeSvc, logger), jwt))
	r.Add(modules.NewAnalyticsModule(handlers.NewAnalyticsHandler(analyticsSvc, logger), jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
