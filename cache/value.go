package cache

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNumber Kind = iota + 1
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is the unit of storage in a named map: exactly one of a number or a text string.
// The zero Value holds no variant and is never stored.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Number returns a Value tagged KindNumber.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Text returns a Value tagged KindText.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Kind returns the active variant.
func (v Value) Kind() Kind { return v.kind }

// AsNumber returns the number held by v, or a *TagMismatchError if v holds text.
func (v Value) AsNumber() (float64, error) {
	if v.kind != KindNumber {
		return 0, &TagMismatchError{Want: KindNumber, Got: v.kind}
	}
	return v.num, nil
}

// AsText returns the text held by v, or a *TagMismatchError if v holds a number.
func (v Value) AsText() (string, error) {
	if v.kind != KindText {
		return "", &TagMismatchError{Want: KindText, Got: v.kind}
	}
	return v.text, nil
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindText:
		return strconv.Quote(v.text)
	default:
		return fmt.Sprintf("Value(%s)", v.kind)
	}
}
