package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ExpenseCategory groups operating expenses for daily close reporting.
type ExpenseCategory string

const (
	ExpenseCategoryRent        ExpenseCategory = "rent"
	ExpenseCategoryUtilities   ExpenseCategory = "utilities"
	ExpenseCategorySalaries    ExpenseCategory = "salaries"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryTaxes       ExpenseCategory = "taxes"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

func (c ExpenseCategory) String() string {
	return string(c)
}

func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryRent, ExpenseCategoryUtilities, ExpenseCategorySalaries,
		ExpenseCategoryMaintenance, ExpenseCategoryTaxes, ExpenseCategoryOther:
		return true
	}
	return false
}

func (c ExpenseCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(c))
}

func (c *ExpenseCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if !ExpenseCategory(str).IsValid() {
		return fmt.Errorf("invalid expense category %q", str)
	}
	*c = ExpenseCategory(str)
	return nil
}

func (c ExpenseCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *ExpenseCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ExpenseCategoryOther
		return nil
	}
	switch v := value.(type) {
	case string:
		*c = ExpenseCategory(v)
	case []byte:
		*c = ExpenseCategory(string(v))
	}
	return nil
}
