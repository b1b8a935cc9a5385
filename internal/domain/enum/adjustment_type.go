package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AdjustmentType describes how an inventory adjustment moved stock.
type AdjustmentType string

const (
	AdjustmentTypeAdd    AdjustmentType = "add"
	AdjustmentTypeRemove AdjustmentType = "remove"
	AdjustmentTypeSet    AdjustmentType = "set"
)

func (t AdjustmentType) String() string {
	return string(t)
}

func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustmentTypeAdd, AdjustmentTypeRemove, AdjustmentTypeSet:
		return true
	}
	return false
}

func (t AdjustmentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *AdjustmentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if !AdjustmentType(str).IsValid() {
		return fmt.Errorf("invalid adjustment type %q", str)
	}
	*t = AdjustmentType(str)
	return nil
}

func (t AdjustmentType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *AdjustmentType) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		*t = AdjustmentType(v)
	case []byte:
		*t = AdjustmentType(string(v))
	}
	return nil
}
