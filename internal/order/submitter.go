package order

import "context"

// SubmitItem 提交给订单服务的行（刻意不含价格：权威价格由服务端决定）
type SubmitItem struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// SubmitRequest 订单提交服务的输入形态
type SubmitRequest struct {
	Items         []SubmitItem `json:"items"`
	PaymentMethod string       `json:"payment_method"`
}

// SubmitResult 订单提交结果
// 契约上只保证 order.id 存在，不依赖响应中的其他字段。
type SubmitResult struct {
	OrderID uint
}

// Submitter 订单提交服务接口
type Submitter interface {
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
}
