package di

import (
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/repository"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/internal/service"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/config"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/jwt"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/pkg/logger"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/shared/observability"
	"github.com/SarthakRaj9876/EduNet-Alumni-Connect-Portal/shared/redis"

	"gorm.io/gorm"
)

// Container holds all the dependencies for the application
type Container struct {
	DB                *gorm.DB
	Logger            *logger.Logger
	JWTService        *jwt.Service
	Cache             *redis.Client
	Metrics           *observability.ChatMetrics
	UserService       *service.UserService
	MessageService    *service.MessageService
	ConnectionService *service.ConnectionService
	PostService       *service.PostService
	MailService       *service.MailService
}

// New creates a new dependency injection container
func New(db *gorm.DB, cfg *config.Config, log *logger.Logger) (*Container, error) {
	jwtService := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Redis is optional; services degrade to uncached behavior when nil.
	var cache *redis.Client
	if cfg.Redis.Enabled {
		cache = redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
	}

	userRepo := repository.NewGormUserRepository(db)
	messageRepo := repository.NewGormMessageRepository(db)
	postRepo := repository.NewGormPostRepository(db)

	userService := service.NewUserService(userRepo, jwtService)
	messageService := service.NewMessageService(messageRepo, userService, cfg.Chat.HistoryLimit, log)
	connectionService := service.NewConnectionService(userRepo, cache)
	postService := service.NewPostService(postRepo, cache, cfg.Chat.FeedPageSize)

	// Mail is optional as well; controllers report 503 when it is absent.
	var mailService *service.MailService
	if cfg.SMTP.Enabled {
		mailService = service.NewMailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
			cfg.SMTP.From,
			log,
		)
	}

	return &Container{
		DB:                db,
		Logger:            log,
		JWTService:        jwtService,
		Cache:             cache,
		Metrics:           observability.NewChatMetrics(),
		UserService:       userService,
		MessageService:    messageService,
		ConnectionService: connectionService,
		PostService:       postService,
		MailService:       mailService,
	}, nil
}
