package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList is a JSON array of strings stored in a jsonb column.
type StringList []string

// Value implements driver.Valuer; nil encodes as an empty array.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	*l = out
	return nil
}

// Clean trims entries and drops blanks.
func (l StringList) Clean() StringList {
	out := make(StringList, 0, len(l))
	for _, s := range l {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// At returns the i-th entry or fallback when absent.
func (l StringList) At(i int, fallback string) string {
	if i >= 0 && i < len(l) && strings.TrimSpace(l[i]) != "" {
		return l[i]
	}
	return fallback
}

// Demographics describes a service area's audience.
type Demographics struct {
	MedianAge     *float64          `json:"median_age,omitempty"`
	MedianIncome  *int64            `json:"median_income,omitempty"`
	Households    *int64            `json:"households,omitempty"`
	HomeownerRate *float64          `json:"homeowner_rate,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`
}

// Value implements driver.Valuer.
func (d Demographics) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *Demographics) Scan(src any) error {
	raw, err := jsonBytes(src)
	if err != nil {
		return err
	}
	*d = Demographics{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, d); err != nil {
		return fmt.Errorf("scan demographics: %w", err)
	}
	return nil
}

// Validate rejects out-of-range values.
func (d Demographics) Validate() error {
	if d.MedianAge != nil && (*d.MedianAge < 0 || *d.MedianAge > 120) {
		return fmt.Errorf("median_age must be between 0 and 120")
	}
	if d.MedianIncome != nil && *d.MedianIncome < 0 {
		return fmt.Errorf("median_income must not be negative")
	}
	if d.Households != nil && *d.Households < 0 {
		return fmt.Errorf("households must not be negative")
	}
	if d.HomeownerRate != nil && (*d.HomeownerRate < 0 || *d.HomeownerRate > 1) {
		return fmt.Errorf("homeowner_rate must be between 0 and 1")
	}
	return nil
}

func jsonBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported json source type %T", src)
	}
}
