package core

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

type (
	// TransactionType is the two-value income/expense enumeration shared by
	// categories and transactions.
	TransactionType string

	// Date is a calendar date without a time component. It marshals as
	// YYYY-MM-DD in JSON and is stored as an ISO date string, so lexical
	// ordering in the database matches chronological ordering.
	Date struct {
		time.Time
	}

	// User is a local account bound to an external Discord identity.
	// discord_id is the natural key; id anchors ownership of transactions
	// and custom categories.
	User struct {
		ID        string    `json:"id"`
		DiscordID string    `json:"discord_id"`
		Username  string    `json:"username"`
		Avatar    *string   `json:"avatar"`
		Email     *string   `json:"email"`
		CreatedAt time.Time `json:"created_at,omitzero"`
		UpdatedAt time.Time `json:"updated_at,omitzero"`
	}

	// Category is either a shared template (is_template, no owner) seeded from
	// the fixed catalog, or a user-owned custom category.
	Category struct {
		ID         int64           `json:"id"`
		Name       string          `json:"name"`
		Icon       string          `json:"icon"`
		Color      string          `json:"color"`
		Type       TransactionType `json:"type"`
		IsTemplate bool            `json:"is_template"`
		UserID     *string         `json:"user_id,omitempty"`
		CreatedAt  time.Time       `json:"created_at,omitzero"`
	}

	// CategoryRef carries the display fields of a category joined onto a
	// transaction.
	CategoryRef struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}

	// Transaction is a single income or expense entry, exclusively owned by
	// its user. Transactions are created and deleted, never edited.
	Transaction struct {
		ID          int64           `json:"id"`
		UserID      string          `json:"user_id"`
		CategoryID  int64           `json:"category_id"`
		Amount      decimal.Decimal `json:"amount"`
		Description *string         `json:"description"`
		Date        Date            `json:"date"`
		Type        TransactionType `json:"type"`
		CreatedAt   time.Time       `json:"created_at"`
		UpdatedAt   time.Time       `json:"updated_at"`
	}

	// TransactionView is a transaction enriched with its joined category for
	// presentation.
	TransactionView struct {
		Transaction
		Category CategoryRef `json:"category"`
	}

	// Stats aggregates a user's full ledger into income, expenses and balance.
	Stats struct {
		TotalIncome   decimal.Decimal `json:"total_income"`
		TotalExpenses decimal.Decimal `json:"total_expenses"`
		Balance       decimal.Decimal `json:"balance"`
	}
)

var ErrInvalidType = errors.New("type must be income or expense")

// Valid reports whether t is one of the two allowed enumeration values.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("date must be a %q string", dateLayout)
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as its ISO string form.
func (d Date) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = v
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}
