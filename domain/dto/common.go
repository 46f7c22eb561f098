package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Pagination is a validated skip/limit pair.
type Pagination struct {
	Skip  int
	Limit int
}

// NewPagination applies defaults and bounds. defaultLimit only applies when
// the caller sent no limit at all; an explicit limit=0 is rejected.
func NewPagination(skip, limit, defaultLimit, maxLimit int, limitSupplied bool) (Pagination, string) {
	if !limitSupplied {
		limit = defaultLimit
	}
	if skip < 0 {
		return Pagination{}, "Skip parameter must be non-negative"
	}
	if limit <= 0 || limit > maxLimit {
		return Pagination{}, fmt.Sprintf("Limit parameter must be between 1 and %d", maxLimit)
	}
	return Pagination{Skip: skip, Limit: limit}, ""
}

// NullableString tells an absent JSON field apart from an explicit null.
// Set is true whenever the field was present; Value is nil for null.
type NullableString struct {
	Value *string
	Set   bool
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}
