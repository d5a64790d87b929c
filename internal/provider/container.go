package provider

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cartflow/internal/auth"
	"github.com/cartflow/internal/cart"
	"github.com/cartflow/internal/checkout"
	"github.com/cartflow/internal/config"
	"github.com/cartflow/internal/constants"
	"github.com/cartflow/internal/logger"
	"github.com/cartflow/internal/models"
	"github.com/cartflow/internal/order"
	"github.com/cartflow/internal/persistence"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Container 依赖注入容器
// 应用根显式构建并持有全部状态对象，按引用传给消费方，
// 不依赖任何包级全局可变状态。
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	Storage     persistence.Store
	CartStore   *cart.Store
	AuthContext auth.Context
	Submitter   order.Submitter
	Handoff     *order.Handoff
	PricingRule checkout.PricingRule

	checkoutMu  sync.Mutex
	progression *checkout.Progression
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}
	log := logger.S()

	storage, err := c.buildStorage(cfg)
	if err != nil {
		return nil, err
	}
	c.Storage = storage
	c.CartStore = cart.NewStore(storage, log)

	rule, err := checkout.NewPricingRule(
		cfg.Pricing.ShippingFee,
		cfg.Pricing.FreeShippingThreshold,
		cfg.Pricing.TaxRate,
	)
	if err != nil {
		return nil, fmt.Errorf("build pricing rule failed: %w", err)
	}
	c.PricingRule = rule

	c.AuthContext = buildAuthContext(&cfg.Auth)
	c.Submitter = order.NewClient(cfg.Orders.BaseURL, time.Duration(cfg.Orders.TimeoutMS)*time.Millisecond)
	c.Handoff = order.NewHandoff(c.CartStore, c.Submitter, log)

	logger.Infow("container_ready",
		"storage_driver", cfg.Storage.Driver,
		"auth_mode", cfg.Auth.Mode,
		"cart_lines", len(c.CartStore.Lines()),
	)
	return c, nil
}

// Checkout 当前结账推进器（首次访问时懒创建）
func (c *Container) Checkout() *checkout.Progression {
	c.checkoutMu.Lock()
	defer c.checkoutMu.Unlock()
	if c.progression == nil {
		c.progression = c.newProgressionLocked()
	}
	return c.progression
}

// ResetCheckout 开始一次新的结账访问（表单清空，步骤回到起点）
func (c *Container) ResetCheckout() *checkout.Progression {
	c.checkoutMu.Lock()
	defer c.checkoutMu.Unlock()
	c.progression = c.newProgressionLocked()
	return c.progression
}

func (c *Container) newProgressionLocked() *checkout.Progression {
	return checkout.NewProgression(
		c.CartStore,
		c.AuthContext,
		c.Handoff,
		c.PricingRule,
		c.Config.Checkout.PaymentMethods,
		logger.S(),
	)
}

func (c *Container) buildStorage(cfg *config.Config) (persistence.Store, error) {
	key := strings.TrimSpace(cfg.Storage.Key)
	if key == "" {
		key = constants.DefaultStorageKey
	}
	driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	switch driver {
	case constants.StorageDriverMemory:
		return persistence.NewMemoryStore(), nil
	case "", constants.StorageDriverFile:
		return persistence.NewFileStore(cfg.Storage.Path), nil
	case constants.StorageDriverDatabase:
		db, err := models.OpenDB(cfg.Storage.Database.Driver, cfg.Storage.Database.DSN, models.DBPoolConfig{
			MaxOpenConns:           cfg.Storage.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Storage.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Storage.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Storage.Database.Pool.ConnMaxIdleTimeSeconds,
		})
		if err != nil {
			return nil, fmt.Errorf("open cart database failed: %w", err)
		}
		c.DB = db
		return persistence.NewDatabaseStore(db, key), nil
	case constants.StorageDriverRedis:
		client := persistence.NewRedisClient(&cfg.Redis)
		c.RedisClient = client
		return persistence.NewRedisStore(client, cfg.Redis.Prefix, key), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}
}

func buildAuthContext(cfg *config.AuthConfig) auth.Context {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == constants.AuthModeToken {
		return auth.NewTokenContext(cfg.JWTSecret)
	}
	return auth.Static{
		Authenticated: cfg.Authenticated,
		Email:         cfg.Email,
	}
}
