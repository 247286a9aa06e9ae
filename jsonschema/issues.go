package jsonschema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes reported while decoding a schema document.
const (
	CodeInvalidType = "invalid_type"
	CodeUnsupported = "unsupported"
	CodeParseError  = "parse_error"
)

// Issue is a single problem found in a schema document.
type Issue struct {
	Path    string // JSON Pointer into the document (for example: /properties/tags/items).
	Code    string // One of the codes listed above.
	Message string
}

// Issues is a collection of decode problems that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s: %s", it.Code, it.Path, it.Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func pointer(parent, token string) string {
	esc := strings.ReplaceAll(strings.ReplaceAll(token, "~", "~0"), "/", "~1")
	return parent + "/" + esc
}
