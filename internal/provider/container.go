package provider

import (
	"github.com/salesdesk-next/internal/authz"
	"github.com/salesdesk-next/internal/cache"
	"github.com/salesdesk-next/internal/config"
	"github.com/salesdesk-next/internal/logger"
	"github.com/salesdesk-next/internal/models"
	"github.com/salesdesk-next/internal/queue"
	"github.com/salesdesk-next/internal/repository"
	"github.com/salesdesk-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	CustomerRepo      repository.CustomerRepository
	ProductRepo       repository.ProductRepository
	PromotionRepo     repository.PromotionRepository
	OrderRepo         repository.OrderRepository
	SlipRepo          repository.SlipRepository
	BankAccountRepo   repository.BankAccountRepository
	CollectionLogRepo repository.CollectionLogRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	OrderService     *service.OrderService
	SlipService      *service.SlipService
	PromotionService *service.PromotionService
	DebtService      *service.DebtService
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
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.SlipRepo = repository.NewSlipRepository(db)
	c.BankAccountRepo = repository.NewBankAccountRepository(db)
	c.CollectionLogRepo = repository.NewCollectionLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CustomerRepo, c.ProductRepo, c.PromotionRepo, c.Config.Order.Currency)
	c.SlipService = service.NewSlipService(c.SlipRepo, c.OrderRepo, c.OrderService, c.QueueClient)
	c.PromotionService = service.NewPromotionService(c.PromotionRepo, c.ProductRepo)
	c.DebtService = service.NewDebtService(c.OrderRepo, c.CollectionLogRepo, c.QueueClient, c.Config.Debt.OverdueDays)
}
