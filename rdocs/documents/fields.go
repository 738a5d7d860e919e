package documents

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is returned when a caller passes a value the list cannot interpret,
// such as an unknown field key.
var ErrInvalidArgument = errors.New("invalid argument")

// Field selects a Record attribute.
type Field int

const (
	FieldName Field = iota
	FieldValue
	FieldIconName
	FieldDateModified
	FieldDateModifiedValue
	FieldFileSize
	FieldFileSizeRaw
	FieldLink
)

// Kind is the comparison semantics of a field.
type Kind int

const (
	KindText Kind = iota
	KindNumber
)

func (k Kind) String() string {
	if k == KindNumber {
		return "number"
	}
	return "string"
}

type accessor struct {
	key  string
	kind Kind
	text func(Record) string
	num  func(Record) int64
}

var accessors = [...]accessor{
	FieldName:              {key: "name", kind: KindText, text: func(r Record) string { return r.Name }},
	FieldValue:             {key: "value", kind: KindText, text: func(r Record) string { return r.Value }},
	FieldIconName:          {key: "iconName", kind: KindText, text: func(r Record) string { return r.IconName }},
	FieldDateModified:      {key: "dateModified", kind: KindText, text: func(r Record) string { return r.DateModified }},
	FieldDateModifiedValue: {key: "dateModifiedValue", kind: KindNumber, num: func(r Record) int64 { return r.DateModifiedValue }},
	FieldFileSize:          {key: "fileSize", kind: KindText, text: func(r Record) string { return r.FileSize }},
	FieldFileSizeRaw:       {key: "fileSizeRaw", kind: KindNumber, num: func(r Record) int64 { return r.FileSizeRaw }},
	FieldLink:              {key: "link", kind: KindText, text: func(r Record) string { return r.Link }},
}

var fieldsByKey = func() map[string]Field {
	m := make(map[string]Field, len(accessors))
	for f, a := range accessors {
		m[a.key] = Field(f)
	}
	return m
}()

// ParseField resolves a field key such as "dateModifiedValue".
// Keys are matched exactly; anything else is ErrInvalidArgument.
func ParseField(key string) (Field, error) {
	f, ok := fieldsByKey[strings.TrimSpace(key)]
	if !ok {
		return 0, fmt.Errorf("%w: unknown field %q", ErrInvalidArgument, key)
	}
	return f, nil
}

// Fields returns every known field in declaration order.
func Fields() []Field {
	out := make([]Field, len(accessors))
	for i := range accessors {
		out[i] = Field(i)
	}
	return out
}

func (f Field) valid() bool { return f >= 0 && int(f) < len(accessors) }

// Key returns the field's stable string key.
func (f Field) Key() string {
	if !f.valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return accessors[f].key
}

func (f Field) String() string { return f.Key() }

// Kind reports whether the field compares as text or as a number.
func (f Field) Kind() Kind {
	if !f.valid() {
		return KindText
	}
	return accessors[f].kind
}

// Compare orders a and b by field f: lexicographically for text fields,
// numerically for number fields. It returns -1, 0 or +1.
func Compare(a, b Record, f Field) int {
	if !f.valid() {
		return 0
	}
	acc := accessors[f]
	if acc.kind == KindNumber {
		return cmp.Compare(acc.num(a), acc.num(b))
	}
	return strings.Compare(acc.text(a), acc.text(b))
}

// Text returns the display form of field f on r.
func Text(r Record, f Field) string {
	if !f.valid() {
		return ""
	}
	acc := accessors[f]
	if acc.kind == KindNumber {
		return fmt.Sprintf("%d", acc.num(r))
	}
	return acc.text(r)
}
