package filter

import (
	"errors"
	"fmt"
)

var (
	errMissingType  = errors.New("missing clause type")
	errMissingValue = errors.New("missing value")
	errNoClauses    = errors.New("and/or clause without sub-clauses")
)

// ConfigError reports a clause that cannot be compiled. Section is "must",
// "should" or "mustNot" and Index the clause position within it; for the
// "deck" and "stake" sections Index is -1.
type ConfigError struct {
	Section string
	Index   int
	Type    string
	Value   string
	Err     error
}

func (e *ConfigError) Error() string {
	msg := e.Section
	if e.Index >= 0 {
		msg += fmt.Sprintf("[%d]", e.Index)
	}
	if e.Type != "" {
		msg += " type " + e.Type
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" value %q", e.Value)
	}
	return msg + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }
