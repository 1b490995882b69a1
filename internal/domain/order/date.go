package order

import (
	"bytes"
	"encoding/json"
	"time"
)

// DateLayout is the wire layout of calendar dates
const DateLayout = "2006-01-02"

// Date is a calendar date in ISO form (YYYY-MM-DD). Because the layout is
// fixed-width, string comparison is chronological comparison.
//
// The backend may answer with a full timestamp; decoding keeps only the date
// part. An empty Date is encoded as null.
type Date string

// String returns the date as a string
func (d Date) String() string {
	return string(d)
}

// IsZero reports whether the date is unset
func (d Date) IsZero() bool {
	return d == ""
}

// Time parses the date. It returns the zero time for an empty or malformed date.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// NewDate returns the Date of t
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// NormalizeDate trims a timestamp down to its date part. Both the RFC 3339
// 'T' separator and the SQL-style space separator are accepted.
func NormalizeDate(v string) Date {
	if len(v) > len(DateLayout) && (v[len(DateLayout)] == 'T' || v[len(DateLayout)] == ' ') {
		if _, err := time.Parse(DateLayout, v[:len(DateLayout)]); err == nil {
			return Date(v[:len(DateLayout)])
		}
	}
	return Date(v)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = NormalizeDate(s)
	return nil
}
