package router

import (
	"github.com/cartflow/internal/config"
	storefronthandlers "github.com/cartflow/internal/http/handlers/storefront"
	"github.com/cartflow/internal/http/response"
	"github.com/cartflow/internal/logger"
	"github.com/cartflow/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := storefronthandlers.New(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		cartGroup := apiV1.Group("/cart")
		{
			cartGroup.GET("", handler.GetCart)
			cartGroup.DELETE("", handler.ClearCart)
			cartGroup.POST("/items", handler.AddCartItem)
			cartGroup.PUT("/items", handler.UpdateCartItemQuantity)
			cartGroup.DELETE("/items/:product_id", handler.DeleteCartItem)
			cartGroup.POST("/open", handler.OpenCart)
			cartGroup.POST("/close", handler.CloseCart)
			cartGroup.POST("/toggle", handler.ToggleCart)
		}

		checkoutGroup := apiV1.Group("/checkout")
		{
			checkoutGroup.GET("", handler.GetCheckout)
			checkoutGroup.PUT("/form", handler.UpdateCheckoutForm)
			checkoutGroup.PUT("/payment-method", handler.SetPaymentMethod)
			checkoutGroup.POST("/submit", handler.SubmitCheckout)
			checkoutGroup.POST("/reset", handler.ResetCheckout)
		}

		sessionGroup := apiV1.Group("/session")
		{
			sessionGroup.GET("", handler.GetSession)
			sessionGroup.POST("/token", handler.SetSessionToken)
			sessionGroup.DELETE("/token", handler.ClearSessionToken)
		}
	}

	// 未匹配路由
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "error.not_found")
	})

	return r
}
