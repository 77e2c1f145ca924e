package provider

import (
	"github.com/shopkart-next/internal/cache"
	"github.com/shopkart-next/internal/config"
	"github.com/shopkart-next/internal/logger"
	"github.com/shopkart-next/internal/models"
	"github.com/shopkart-next/internal/queue"
	"github.com/shopkart-next/internal/repository"
	"github.com/shopkart-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo      repository.ProductRepository
	ValidProductRepo repository.ValidProductRepository
	UserRepo         repository.UserRepository
	CartRepo         repository.CartRepository

	// Services
	CatalogService      *service.CatalogService
	ProductAdminService *service.ProductAdminService
	CartService         *service.CartService
	UserService         *service.UserService
	EmailService        *service.EmailService
	Notifier            service.Notifier
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.ValidProductRepo = repository.NewValidProductRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.Config.Catalog.DiscountThreshold)
	c.ProductAdminService = service.NewProductAdminService(c.ProductRepo, c.ValidProductRepo, c.Config.Catalog.ClearanceWindowDays)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.UserRepo)
	c.UserService = service.NewUserService(c.UserRepo)
	c.Notifier = service.NewEmailNotifier(c.QueueClient, c.EmailService, c.Config.Email.NotifyTo)
}
