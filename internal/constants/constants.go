package constants

// 购物车持久化驱动常量
const (
	StorageDriverMemory   = "memory"
	StorageDriverFile     = "file"
	StorageDriverDatabase = "database"
	StorageDriverRedis    = "redis"
)

// 持久化默认键（键值存储中的固定地址）
const (
	DefaultStorageKey = "cart"
)

// 结账向导步骤常量
const (
	CheckoutStepContact  = "contact"
	CheckoutStepShipping = "shipping"
	CheckoutStepPayment  = "payment"
)

// 结账状态常量（步骤之外的终态/过渡态）
const (
	CheckoutStateEmpty      = "empty"
	CheckoutStateSubmitting = "submitting"
	CheckoutStateSuccess    = "success"
	CheckoutStateFailed     = "failed"
)

// 鉴权上下文模式常量
const (
	AuthModeStatic = "static"
	AuthModeToken  = "token"
)

// 默认支付方式标签
const (
	DefaultPaymentMethod = "card"
)
