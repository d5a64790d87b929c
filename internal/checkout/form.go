package checkout

import "strings"

// Form 结账表单（联系信息 + 收货信息，均为自由文本）
// 每次结账访问新建，不跨会话持久化。
type Form struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ContactComplete 联系信息字段组是否填写完整
// 只判断非空，不校验格式。
func (f Form) ContactComplete() bool {
	return strings.TrimSpace(f.FirstName) != "" &&
		strings.TrimSpace(f.LastName) != "" &&
		strings.TrimSpace(f.Email) != ""
}

// ShippingComplete 收货信息字段组是否填写完整
func (f Form) ShippingComplete() bool {
	return strings.TrimSpace(f.Address) != "" &&
		strings.TrimSpace(f.City) != ""
}
