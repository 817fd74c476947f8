package models

import (
	"encoding/json"

	"github.com/spf13/cast"
)

// Money is a price or total as returned by the API. The backend is not
// consistent about the JSON type: older endpoints send "50000.00" as a
// string, newer ones send a bare number. Money accepts both.
type Money string

func (m *Money) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*m = Money(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*m = Money(n.String())
	return nil
}

// Float64 returns the numeric value, or 0 for empty/garbage input.
func (m Money) Float64() float64 {
	if m == "" {
		return 0
	}
	return cast.ToFloat64(string(m))
}

func (m Money) String() string { return string(m) }
