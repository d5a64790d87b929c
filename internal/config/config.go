package config

import (
	"fmt"
	"strings"

	"github.com/cartflow/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Checkout CheckoutConfig `mapstructure:"checkout"`
	Orders   OrdersConfig   `mapstructure:"orders"`
	Auth     AuthConfig     `mapstructure:"auth"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// StorageConfig 购物车持久化配置
type StorageConfig struct {
	Driver   string         `mapstructure:"driver"` // memory / file / database / redis
	Key      string         `mapstructure:"key"`    // 键值存储中的固定键
	Path     string         `mapstructure:"path"`   // file 驱动的存储路径
	Database DatabaseConfig `mapstructure:"database"`
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// PricingConfig 价格明细配置（金额均为十进制字符串）
type PricingConfig struct {
	ShippingFee           string `mapstructure:"shipping_fee"`
	FreeShippingThreshold string `mapstructure:"free_shipping_threshold"`
	TaxRate               string `mapstructure:"tax_rate"`
}

// CheckoutConfig 结账配置
type CheckoutConfig struct {
	PaymentMethods []string `mapstructure:"payment_methods"`
}

// OrdersConfig 订单提交服务配置
type OrdersConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMS int    `mapstructure:"timeout_ms"`
}

// AuthConfig 鉴权上下文配置
type AuthConfig struct {
	Mode          string `mapstructure:"mode"` // static / token
	Authenticated bool   `mapstructure:"authenticated"`
	Email         string `mapstructure:"email"`
	JWTSecret     string `mapstructure:"jwt_secret"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")   // 如果从 cmd/server 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "cartflow.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("storage.driver", "file")
	viper.SetDefault("storage.key", "cart")
	viper.SetDefault("storage.path", "./data/cart.json")
	viper.SetDefault("storage.database.driver", "sqlite")
	viper.SetDefault("storage.database.dsn", "./data/cartflow.db")
	viper.SetDefault("storage.database.pool.max_open_conns", 1)
	viper.SetDefault("storage.database.pool.max_idle_conns", 1)
	viper.SetDefault("storage.database.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("storage.database.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("redis.host", "127.0.0.1")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "cartflow")
	viper.SetDefault("pricing.shipping_fee", "5.00")
	viper.SetDefault("pricing.free_shipping_threshold", "50.00")
	viper.SetDefault("pricing.tax_rate", "0.10")
	viper.SetDefault("checkout.payment_methods", []string{"card", "paypal", "cod"})
	viper.SetDefault("orders.base_url", "http://127.0.0.1:9000")
	viper.SetDefault("orders.timeout_ms", 10000)
	viper.SetDefault("auth.mode", "static")
	viper.SetDefault("auth.authenticated", false)
	viper.SetDefault("auth.email", "")
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
	})
	viper.SetDefault("cors.allow_credentials", true)
	viper.SetDefault("cors.max_age", 600)

	// 环境变量支持（例如 server.port -> SERVER_PORT）
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("config unmarshal failed: %w", err))
	}

	return &cfg
}
