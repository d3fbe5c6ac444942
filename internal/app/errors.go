package app

import (
	"fmt"
	"strings"
)

// UsageError is a missing or malformed invocation. Nothing has been written
// when it is returned.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

// UnresolvedError is returned in strict mode when the rendered output still
// contains @NAME@ tokens.
type UnresolvedError struct {
	Template string
	Tokens   []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("template %s: unresolved placeholders %s", e.Template, strings.Join(e.Tokens, ", "))
}
