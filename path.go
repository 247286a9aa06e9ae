package skemaform

import (
	"strconv"
	"strings"
)

// pointer builds JSON Pointer paths in a chain-safe way. The zero value is
// the document root.
type pointer struct {
	parts []string
}

// editSegment addresses a table's staged row.
const editSegment = "$edit"

func (p pointer) Field(name string) pointer {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return pointer{parts: append(append([]string{}, p.parts...), esc)}
}

func (p pointer) Index(i int) pointer {
	return pointer{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p pointer) String() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// itemName labels the i-th element of the list called name.
func itemName(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}
