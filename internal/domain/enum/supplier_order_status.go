package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SupplierOrderStatus represents the lifecycle of a supplier order.
// Pending may move to Received or Cancelled; both are terminal.
type SupplierOrderStatus int

const (
	SupplierOrderStatusPending   SupplierOrderStatus = 0
	SupplierOrderStatusReceived  SupplierOrderStatus = 1
	SupplierOrderStatusCancelled SupplierOrderStatus = 2
)

var supplierOrderStatusNames = [...]string{"pending", "received", "cancelled"}

func (s SupplierOrderStatus) String() string {
	if s < 0 || int(s) >= len(supplierOrderStatusNames) {
		return fmt.Sprintf("SupplierOrderStatus(%d)", int(s))
	}
	return supplierOrderStatusNames[s]
}

// ParseSupplierOrderStatus accepts the lower-case status name.
func ParseSupplierOrderStatus(str string) (SupplierOrderStatus, bool) {
	for i, name := range supplierOrderStatusNames {
		if name == str {
			return SupplierOrderStatus(i), true
		}
	}
	return SupplierOrderStatusPending, false
}

func (s SupplierOrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SupplierOrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SupplierOrderStatus(i)
		return nil
	}
	parsed, ok := ParseSupplierOrderStatus(str)
	if !ok {
		return fmt.Errorf("invalid supplier order status %q", str)
	}
	*s = parsed
	return nil
}

func (s SupplierOrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *SupplierOrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SupplierOrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = SupplierOrderStatus(v)
	case int32:
		*s = SupplierOrderStatus(v)
	case int:
		*s = SupplierOrderStatus(v)
	}
	return nil
}
