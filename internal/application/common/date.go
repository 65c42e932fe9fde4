package common

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/fintrack/backend/internal/domain/shared"
)

// Date is a calendar date that travels as "YYYY-MM-DD". RFC 3339 timestamps
// are accepted on input and truncated to their date.
type Date struct {
	time.Time
}

// NewDate wraps t as a date
func NewDate(t time.Time) Date {
	return Date{Time: shared.DateOf(t)}
}

// DatePtr converts an optional time to an optional date
func DatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}

// TimePtr returns the wrapped time, or nil for a nil date
func (d *Date) TimePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(shared.DateLayout))
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(shared.DateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return shared.NewDomainError("INVALID_DATE", "Dates must be formatted YYYY-MM-DD")
	}
	d.Time = shared.DateOf(t)
	return nil
}
