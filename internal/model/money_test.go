package model

import (
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestNewMoney(t *testing.T) {
	if got := NewMoney(nil, ptr("USD")); got != nil {
		t.Errorf("NewMoney(nil) = %v, want nil", got)
	}

	m := NewMoney(ptr(42.5), nil)
	if m == nil {
		t.Fatal("NewMoney returned nil")
	}
	if m.Currency != "" {
		t.Errorf("Currency = %q, want empty", m.Currency)
	}
	if m.String() != "42.50" {
		t.Errorf("String() = %q, want 42.50", m.String())
	}
}

func TestMoney_Cents(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  int64
	}{
		{"whole number", 99.00, 9900},
		{"with cents", 123.45, 12345},
		{"zero", 0, 0},
		{"large value", 1234567.89, 123456789},
		{"one decimal", 99.9, 9990},
		{"small value", 0.01, 1},
		{"negative (discount)", -10.00, -1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewMoney(ptr(tt.value), ptr("USD")).Cents()
			if got != tt.want {
				t.Errorf("Cents() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMoney_NilSafe(t *testing.T) {
	var m *Money
	if m.Cents() != 0 {
		t.Error("nil Cents() should be 0")
	}
	if m.String() != "" {
		t.Error("nil String() should be empty")
	}
}

func TestMoney_String(t *testing.T) {
	m := NewMoney(ptr(5.0), ptr("USD"))
	if got := m.String(); got != "5.00 USD" {
		t.Errorf("String() = %q, want %q", got, "5.00 USD")
	}
}
