// Package patch provides three-state request fields for partial
// updates: a field can be omitted (leave the stored value alone),
// present with null (clear the stored value), or present with a value.
// Plain pointers cannot distinguish the first two cases when decoding
// JSON, so update request types use these wrappers instead.
package patch

import "encoding/json"

// String is a nullable, optional string field. Set is true only when
// the field appeared in the request body; Value is nil for an explicit
// null.
type String struct {
	Set   bool
	Value *string
}

func (s *String) UnmarshalJSON(data []byte) error {
	s.Set = true
	if string(data) == "null" {
		s.Value = nil
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	s.Value = &value
	return nil
}

// NewString returns a set field holding value. Used by tests and
// service-level callers that bypass JSON decoding.
func NewString(value string) String {
	return String{Set: true, Value: &value}
}

// Null returns a set field holding an explicit null.
func Null() String {
	return String{Set: true}
}
