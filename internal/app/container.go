package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/config"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/infrastructure/auth"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/infrastructure/database"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/infrastructure/notifications"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/infrastructure/repositories"
	"github.com/Davie-07/KTVC-FINAL-sub001/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	// Repositories
	StudentDir       domain.StudentDirectory
	Fees             domain.FeeLedger
	AttemptRepo      domain.AttemptRepository
	ChallengeRepo    domain.ChallengeCodeRepository
	NotificationRepo domain.NotificationRepository

	// Services
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	Ledger          domain.AttemptLedger
	Issuer          domain.ChallengeIssuer
	VerificationSvc domain.VerificationService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}

	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(db, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}

	c.DB = db
	c.Casbin = cas
	return nil
}

func (c *Container) initRedis() error {
	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}
	c.RedisClient = rdb.Client
	return nil
}

func (c *Container) initRepositories() {
	c.StudentDir = repositories.NewStudentRepository(c.DB)
	c.Fees = repositories.NewFeeRepository(c.DB)
	c.AttemptRepo = repositories.NewAttemptRepository(c.DB)
	c.ChallengeRepo = repositories.NewChallengeRepository(c.DB)
	c.NotificationRepo = repositories.NewNotificationRepository(c.DB)
}

func (c *Container) initServices() {
	clock := services.NewSystemClock()
	locker := database.NewKeyedLock(c.RedisClient, c.Config.LockTTL)

	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.AccessTTL)
	sms := notifications.NewTwilioGateway(c.Config.TwilioSID, c.Config.TwilioToken, c.Config.TwilioFrom)
	c.NotificationSvc = services.NewNotificationService(c.NotificationRepo, sms, c.StudentDir)

	c.Ledger = services.NewAttemptLedger(c.AttemptRepo, clock)
	c.Issuer = services.NewChallengeService(c.ChallengeRepo, c.NotificationSvc, clock)
	c.VerificationSvc = services.NewVerificationService(
		c.StudentDir,
		c.Fees,
		c.Ledger,
		c.Issuer,
		locker,
		clock,
		c.Config.ChallengeThreshold,
	)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
