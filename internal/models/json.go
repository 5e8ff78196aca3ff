package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// JSONColumn is the base for JSONB-backed columns.
func scanJSON(dest interface{}, src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

// IntSlice stores an ordered list of user ids as JSONB.
type IntSlice []int

func (s IntSlice) Value() (driver.Value, error) {
	if s == nil {
		s = IntSlice{}
	}
	return json.Marshal(s)
}

func (s *IntSlice) Scan(src interface{}) error {
	return scanJSON(s, src)
}

// StringSlice stores an ordered list of strings as JSONB.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		s = StringSlice{}
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(src interface{}) error {
	return scanJSON(s, src)
}

// RawContent carries a gift content payload between the API and the content column.
type RawContent json.RawMessage

func (r RawContent) Value() (driver.Value, error) {
	if len(r) == 0 {
		return []byte("{}"), nil
	}
	return []byte(r), nil
}

func (r *RawContent) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		*r = append((*r)[:0], v...)
		return nil
	case string:
		*r = RawContent(v)
		return nil
	case nil:
		*r = nil
		return nil
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

func (r RawContent) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

func (r *RawContent) UnmarshalJSON(data []byte) error {
	if r == nil {
		return errors.New("models.RawContent: UnmarshalJSON on nil pointer")
	}
	*r = append((*r)[:0], data...)
	return nil
}
