package skemaform

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// TextField edits a string.
type TextField struct {
	base
	schema *Primitive
	value  any
}

func newTextField(e *env, name string, ptr pointer, s *Primitive, value any, onChange func(any)) *TextField {
	return &TextField{base: newBase(e, name, ptr, s.Title, onChange), schema: s, value: value}
}

func (f *TextField) Kind() FieldKind { return FieldText }

// Value is the current text; absent values read as "".
func (f *TextField) Value() string {
	if s, ok := f.value.(string); ok {
		return s
	}
	return keyString(f.value)
}

// Placeholder is the schema description.
func (f *TextField) Placeholder() string { return f.schema.Description }

// Set emits the new text.
func (f *TextField) Set(s string) { f.emit(s) }

func (f *TextField) update(schema Node, value any) {
	f.schema = schema.(*Primitive)
	f.value = value
	f.retitle(f.schema.Title)
}

func (f *TextField) unmount() {}

// NumberField edits a number. Text input is parsed leniently: surrounding
// space is ignored, empty text is 0 and anything unparsable is NaN.
type NumberField struct {
	base
	schema *Primitive
	value  any
}

func newNumberField(e *env, name string, ptr pointer, s *Primitive, value any, onChange func(any)) *NumberField {
	return &NumberField{base: newBase(e, name, ptr, s.Title, onChange), schema: s, value: value}
}

func (f *NumberField) Kind() FieldKind { return FieldNumber }

// Value returns the stored number; ok is false when none is stored.
func (f *NumberField) Value() (float64, bool) {
	v, ok := f.value.(float64)
	return v, ok
}

// Text is the stored number as edited text.
func (f *NumberField) Text() string {
	if v, ok := f.value.(float64); ok {
		return keyString(v)
	}
	return keyString(f.value)
}

func (f *NumberField) Placeholder() string { return f.schema.Description }

// Set parses text and emits the result, NaN included.
func (f *NumberField) Set(text string) { f.emit(parseNumber(text)) }

// SetNumber emits n.
func (f *NumberField) SetNumber(n float64) { f.emit(n) }

func (f *NumberField) update(schema Node, value any) {
	f.schema = schema.(*Primitive)
	f.value = value
	f.retitle(f.schema.Title)
}

func (f *NumberField) unmount() {}

// parseNumber reads text the way a browser number input coerces it: the
// Infinity spellings, 0x/0o/0b integers and plain decimals. Anything else
// is NaN.
func parseNumber(text string) float64 {
	t := strings.TrimSpace(text)
	switch t {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(t) > 2 && t[0] == '0' {
		switch t[1] {
		case 'x', 'X':
			return parseRadix(t[2:], 16)
		case 'o', 'O':
			return parseRadix(t[2:], 8)
		case 'b', 'B':
			return parseRadix(t[2:], 2)
		}
	}
	if strings.TrimLeft(t, "0123456789+-.eE") != "" {
		return math.NaN()
	}
	n, err := strconv.ParseFloat(t, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return n
		}
		return math.NaN()
	}
	return n
}

func parseRadix(digits string, base int) float64 {
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return math.NaN()
	}
	i, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return math.NaN()
	}
	f, _ := new(big.Float).SetInt(i).Float64()
	return f
}

// ToggleField edits a boolean.
type ToggleField struct {
	base
	schema *Primitive
	value  any
}

func newToggleField(e *env, name string, ptr pointer, s *Primitive, value any, onChange func(any)) *ToggleField {
	return &ToggleField{base: newBase(e, name, ptr, s.Title, onChange), schema: s, value: value}
}

func (f *ToggleField) Kind() FieldKind { return FieldToggle }

// Checked is true only when the stored value is true.
func (f *ToggleField) Checked() bool { return f.value == true }

func (f *ToggleField) Set(checked bool) { f.emit(checked) }

func (f *ToggleField) update(schema Node, value any) {
	f.schema = schema.(*Primitive)
	f.value = value
	f.retitle(f.schema.Title)
}

func (f *ToggleField) unmount() {}
