package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrRequestFailed 网络请求失败
	ErrRequestFailed = errors.New("order submit request failed")
	// ErrResponseInvalid 响应无法解析或缺少订单号
	ErrResponseInvalid = errors.New("order submit response invalid")
	// ErrSubmitRejected 服务端拒绝（校验失败等，携带服务端消息）
	ErrSubmitRejected = errors.New("order submit rejected")
)

const defaultSubmitTimeout = 10 * time.Second

// Client 订单提交服务的 HTTP 客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建订单提交客户端
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultSubmitTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Submit 提交订单
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	endpoint := c.baseURL + "/api/v1/orders"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer httpResp.Body.Close()

	respBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var resp struct {
		Order struct {
			ID uint `json:"id"`
		} `json:"order"`
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
			return nil, fmt.Errorf("%w: http status %d", ErrSubmitRejected, httpResp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 || resp.Order.ID == 0 {
		message := strings.TrimSpace(resp.Message)
		if message == "" {
			message = strings.TrimSpace(resp.Error)
		}
		if message == "" {
			message = fmt.Sprintf("http status %d", httpResp.StatusCode)
		}
		if resp.Order.ID == 0 && httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 && resp.Message == "" && resp.Error == "" {
			return nil, fmt.Errorf("%w: missing order id", ErrResponseInvalid)
		}
		return nil, fmt.Errorf("%w: %s", ErrSubmitRejected, message)
	}

	return &SubmitResult{OrderID: resp.Order.ID}, nil
}
