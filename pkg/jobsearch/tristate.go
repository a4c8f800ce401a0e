package jobsearch

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// TriState is a boolean facet that can also be left unset, so "only
// non-urgent jobs" is distinguishable from "don't care".
type TriState int8

const (
	Unset TriState = iota
	True
	False
)

func TriFrom(b bool) TriState {
	if b {
		return True
	}
	return False
}

func (t TriState) IsSet() bool {
	return t == True || t == False
}

// Bool returns the value and whether it is set.
func (t TriState) Bool() (bool, bool) {
	switch t {
	case True:
		return true, true
	case False:
		return false, true
	default:
		return false, false
	}
}

// Ptr returns nil when unset.
func (t TriState) Ptr() *bool {
	b, ok := t.Bool()
	if !ok {
		return nil
	}
	return &b
}

func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return ""
	}
}

// ParseTriState accepts anything strconv.ParseBool does; the empty string
// is Unset.
func ParseTriState(s string) (TriState, error) {
	if s == "" {
		return Unset, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return Unset, fmt.Errorf("parse tri-state %q: %w", s, err)
	}
	return TriFrom(b), nil
}

func (t TriState) MarshalJSON() ([]byte, error) {
	if !t.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(t == True)
}

func (t *TriState) UnmarshalJSON(b []byte) error {
	var v *bool
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		*t = Unset
		return nil
	}
	*t = TriFrom(*v)
	return nil
}
