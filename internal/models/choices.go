package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Choice is a fixed-catalog order attribute stored as a JSON text column.
// Marshalling a struct yields stable field order, so the serialized form
// is byte-identical across writes and safe to compare in WHERE clauses.
type Choice struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// PricedChoice is a Choice that contributes a flat amount to the order
// price (deadline urgency premium).
type PricedChoice struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

func (c Choice) Value() (driver.Value, error) {
	return marshalChoice(c)
}

func (c *Choice) Scan(src interface{}) error {
	return scanChoice(src, c)
}

func (c PricedChoice) Value() (driver.Value, error) {
	return marshalChoice(c)
}

func (c *PricedChoice) Scan(src interface{}) error {
	return scanChoice(src, c)
}

func marshalChoice(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanChoice(src, dst interface{}) error {
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported choice column type %T", src)
	}
}

var (
	StatusPending    = Choice{ID: 1, Title: "Pending"}
	StatusInProgress = Choice{ID: 2, Title: "In Progress"}
	StatusCompleted  = Choice{ID: 3, Title: "Completed"}

	PaymentUnpaid = Choice{ID: 1, Title: "Unpaid"}
	PaymentPaid   = Choice{ID: 2, Title: "Paid"}
)

var SpacingOptions = []Choice{
	{ID: 1, Title: "Double Spacing"},
	{ID: 2, Title: "Single Spacing"},
}

var DeadlineOptions = []PricedChoice{
	{ID: 1, Title: "3 hours", Price: 20},
	{ID: 2, Title: "8 hours", Price: 18},
	{ID: 3, Title: "12 hours", Price: 16},
	{ID: 4, Title: "24 hours", Price: 14},
	{ID: 5, Title: "2 days", Price: 12},
	{ID: 6, Title: "3 days", Price: 10},
	{ID: 7, Title: "5 days", Price: 8},
	{ID: 8, Title: "7 days", Price: 6},
	{ID: 9, Title: "10 days", Price: 4},
	{ID: 10, Title: "20 days", Price: 2},
	{ID: 11, Title: "30 days", Price: 0},
}

var LanguageOptions = []Choice{
	{ID: 1, Title: "English (U.S)"},
	{ID: 2, Title: "English (U.K)"},
}

var FormatOptions = []Choice{
	{ID: 1, Title: "APA"},
	{ID: 2, Title: "CBE"},
	{ID: 3, Title: "Chicago"},
	{ID: 4, Title: "Harvard"},
	{ID: 5, Title: "MLA"},
	{ID: 6, Title: "OxFord"},
	{ID: 7, Title: "Turabian"},
	{ID: 8, Title: "Vancouver"},
	{ID: 9, Title: "Other"},
}

var StatusOptions = []Choice{StatusPending, StatusInProgress, StatusCompleted}

var PaymentOptions = []Choice{PaymentUnpaid, PaymentPaid}

// FindChoice resolves an option by ID against its allow-list.
func FindChoice(options []Choice, id int) (Choice, bool) {
	for _, opt := range options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Choice{}, false
}

// FindDeadline resolves a deadline option by ID.
func FindDeadline(id int) (PricedChoice, bool) {
	for _, opt := range DeadlineOptions {
		if opt.ID == id {
			return opt, true
		}
	}
	return PricedChoice{}, false
}
