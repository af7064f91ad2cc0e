package container

import (
	"context"
	"fmt"
	"time"

	"bookshare-backend/internal/config"
	infraCache "bookshare-backend/internal/infrastructure/cache"
	"bookshare-backend/internal/infrastructure/database"
	"bookshare-backend/internal/infrastructure/storage"
	"bookshare-backend/pkg/cache"
	"bookshare-backend/pkg/jwt"
	"bookshare-backend/pkg/logger"

	bookHandler "bookshare-backend/internal/domains/book/handler"
	bookRepo "bookshare-backend/internal/domains/book/repository"
	bookService "bookshare-backend/internal/domains/book/service"
	userHandler "bookshare-backend/internal/domains/user/handler"
	userRepo "bookshare-backend/internal/domains/user/repository"
	userService "bookshare-backend/internal/domains/user/service"
)

// Container holds the full dependency graph. Initialization order is
// config → infrastructure → repositories → services → handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	BookRepo    bookRepo.Interface
	BookService bookService.ServiceInterface
	BookHandler *bookHandler.Handler

	UserRepo    userRepo.Interface
	UserService userService.ServiceInterface
	UserHandler *userHandler.Handler

	redisCache *infraCache.RedisCache
}

// NewContainer builds and wires the whole application.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.redisCache = redisCache
	c.Cache = redisCache

	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}
	c.Storage = minioStorage

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
	c.UserService = userService.NewService(c.UserRepo, c.JWTManager)
	c.UserHandler = userHandler.NewHandler(c.UserService)

	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)
	c.BookService = bookService.NewService(c.BookRepo, c.Storage, c.Cache)
	c.BookHandler = bookHandler.NewHandler(c.BookService)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

// Cleanup releases infrastructure resources.
func (c *Container) Cleanup() {
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			logger.Warn("failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
