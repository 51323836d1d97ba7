package listview

import (
	"encoding/json"
	"fmt"
)

// ToRecord converts a flat struct into a Record by round-tripping through
// JSON, so `json:"tag"` annotations and omitempty are respected. The input
// must marshal to a flat JSON object.
func ToRecord[T any](value T) (Record, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("ToRecord: failed to marshal value: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("ToRecord: value is not a flat object: %w", err)
	}
	return rec, nil
}

// FromRecord converts a Record into a new instance of the struct type T,
// the inverse of ToRecord.
func FromRecord[T any](rec Record) (T, error) {
	var out T
	if rec == nil {
		return out, fmt.Errorf("FromRecord: input record cannot be nil")
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return out, fmt.Errorf("FromRecord: failed to marshal record: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("FromRecord: failed to unmarshal into target: %w", err)
	}
	return out, nil
}
