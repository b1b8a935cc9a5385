package enum

import (
	"encoding/json"
	"testing"
)

func TestSupplierOrderStatusJSON(t *testing.T) {
	for _, s := range []SupplierOrderStatus{SupplierOrderStatusPending, SupplierOrderStatusReceived, SupplierOrderStatusCancelled} {
		data, err := json.Marshal(s)
		if err != nil {
			t.Fatal(err)
		}
		var got SupplierOrderStatus
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatal(err)
		}
		if got != s {
			t.Errorf("round trip %v: got %v", s, got)
		}
	}

	var s SupplierOrderStatus
	if err := json.Unmarshal([]byte(`"shipped"`), &s); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := json.Unmarshal([]byte(`1`), &s); err != nil || s != SupplierOrderStatusReceived {
		t.Errorf("numeric status: got %v, %v", s, err)
	}
}

func TestRejectsUnknownValues(t *testing.T) {
	var m PaymentMethod
	if err := json.Unmarshal([]byte(`"cheque"`), &m); err == nil {
		t.Error("expected payment method error")
	}
	var a AdjustmentType
	if err := json.Unmarshal([]byte(`"move"`), &a); err == nil {
		t.Error("expected adjustment type error")
	}
	var c ExpenseCategory
	if err := json.Unmarshal([]byte(`"travel"`), &c); err == nil {
		t.Error("expected expense category error")
	}
	var u UnitType
	if err := json.Unmarshal([]byte(`"dozen"`), &u); err == nil {
		t.Error("expected unit type error")
	}
}

func TestUnitTypeAllowsFraction(t *testing.T) {
	if UnitTypeUnit.AllowsFraction() {
		t.Error("unit must be whole")
	}
	for _, u := range []UnitType{UnitTypeKg, UnitTypeGram, UnitTypeLiter, UnitTypeML} {
		if !u.AllowsFraction() {
			t.Errorf("%s should allow fractions", u)
		}
	}
}
