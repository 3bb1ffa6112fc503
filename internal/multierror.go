package internal

import (
	"fmt"
	"strings"
)

// MultiError collects errors from loops that should keep going after a
// failure and report everything at the end.
type MultiError struct {
	errs []error
}

// Add appends an error. Nil errors are ignored.
func (m *MultiError) Add(err error) {
	if err != nil {
		m.errs = append(m.errs, err)
	}
}

// Err returns the collected errors as a single error, or nil when none
// were added.
func (m *MultiError) Err() error {
	if len(m.errs) == 0 {
		return nil
	}

	return m
}

func (m *MultiError) Error() string {
	msgs := make([]string, 0, len(m.errs))
	for _, err := range m.errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Sprintf("%d error(s) occurred: %s", len(m.errs), strings.Join(msgs, "; "))
}
