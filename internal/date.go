package internal

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// MinSupportedYear is the first year the reference feed has data for.
const MinSupportedYear = 1999

type Date struct{ time.Time }

const dateTimeLayout = "2006-01-02 15:04:05Z07"
const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD or a full timestamp and truncates it to a UTC calendar day.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(dateTimeLayout, s)
		if err != nil {
			return Date{}, InvalidArgument("parse date %q: %v", s, err)
		}
	}
	tt := t.UTC()
	return NewDate(tt.Year(), tt.Month(), tt.Day()), nil
}

func (d Date) Format() string { return d.Time.Format(dateLayout) }

func (d Date) String() string { return d.Format() }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Date) Compare(other Date) int { return d.Time.Compare(other.Time) }

func (d Date) Supported() bool { return d.Year() >= MinSupportedYear }

func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}

	s := strings.Trim(string(b), "\"")
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", d.Format())), nil
}
