package core

import (
	"encoding/json"
	"testing"
)

func TestTransactionType_Valid(t *testing.T) {
	tests := []struct {
		name string
		typ  TransactionType
		want bool
	}{
		{name: "income", typ: TypeIncome, want: true},
		{name: "expense", typ: TypeExpense, want: true},
		{name: "empty", typ: TransactionType(""), want: false},
		{name: "unknown", typ: TransactionType("transfer"), want: false},
		{name: "case sensitive", typ: TransactionType("Income"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 1, 15)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `"2024-01-15"` {
		t.Errorf("Marshal = %s, want %q", data, "2024-01-15")
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip mismatch: got %v, want %v", back, d)
	}
}

func TestDate_UnmarshalJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "not a string", in: `20240115`},
		{name: "wrong layout", in: `"15/01/2024"`},
		{name: "datetime", in: `"2024-01-15T10:00:00Z"`},
		{name: "empty", in: `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tt.in), &d); err == nil {
				t.Errorf("expected error for %s", tt.in)
			}
		})
	}
}

func TestDate_Scan(t *testing.T) {
	var d Date
	if err := d.Scan("2023-12-31"); err != nil {
		t.Fatalf("Scan string error: %v", err)
	}
	if d.String() != "2023-12-31" {
		t.Errorf("Scan string = %s, want 2023-12-31", d)
	}

	var fromBytes Date
	if err := fromBytes.Scan([]byte("2023-12-31")); err != nil {
		t.Fatalf("Scan bytes error: %v", err)
	}
	if fromBytes.String() != "2023-12-31" {
		t.Errorf("Scan bytes = %s, want 2023-12-31", fromBytes)
	}

	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}

func TestTemplateCatalog_Shape(t *testing.T) {
	var income, expense int
	seen := make(map[string]bool)
	for _, c := range TemplateCatalog {
		switch c.Type {
		case TypeIncome:
			income++
		case TypeExpense:
			expense++
		default:
			t.Errorf("catalog entry %q has invalid type %q", c.Name, c.Type)
		}
		key := c.Name + "/" + string(c.Type)
		if seen[key] {
			t.Errorf("duplicate catalog entry %s", key)
		}
		seen[key] = true
		if c.Icon == "" || c.Color == "" {
			t.Errorf("catalog entry %q missing icon or color", c.Name)
		}
	}
	if expense != 10 {
		t.Errorf("expense templates = %d, want 10", expense)
	}
	if income != 6 {
		t.Errorf("income templates = %d, want 6", income)
	}
}
