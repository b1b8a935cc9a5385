package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// UnitType is the unit a product is sold in.
type UnitType string

const (
	UnitTypeUnit  UnitType = "unit"
	UnitTypeKg    UnitType = "kg"
	UnitTypeGram  UnitType = "gram"
	UnitTypeLiter UnitType = "liter"
	UnitTypeML    UnitType = "ml"
)

func (u UnitType) String() string {
	return string(u)
}

func (u UnitType) IsValid() bool {
	switch u {
	case UnitTypeUnit, UnitTypeKg, UnitTypeGram, UnitTypeLiter, UnitTypeML:
		return true
	}
	return false
}

// AllowsFraction reports whether quantities may have a fractional part.
// Only discrete units must be whole.
func (u UnitType) AllowsFraction() bool {
	return u != UnitTypeUnit
}

func (u UnitType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(u))
}

func (u *UnitType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if !UnitType(str).IsValid() {
		return fmt.Errorf("invalid unit type %q", str)
	}
	*u = UnitType(str)
	return nil
}

func (u UnitType) Value() (driver.Value, error) {
	return string(u), nil
}

func (u *UnitType) Scan(value interface{}) error {
	if value == nil {
		*u = UnitTypeUnit
		return nil
	}
	switch v := value.(type) {
	case string:
		*u = UnitType(v)
	case []byte:
		*u = UnitType(string(v))
	}
	return nil
}
