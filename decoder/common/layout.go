package common

import (
	"fmt"
	"sort"
)

const (
	// DiscriminatorLen is the width of the leading type discriminator.
	DiscriminatorLen = 8
	// AddressLen is the width of a raw public key.
	AddressLen = 32
)

// FieldType enumerates the fixed-width field encodings a layout may declare.
type FieldType int

const (
	TypeU8 FieldType = iota
	TypeU16
	TypeU32
	TypeI32
	TypeU64
	TypeU128
	TypeAddress
	TypeBytes
)

// Width returns the encoded size of the field type in bytes. TypeBytes has no
// intrinsic width and reports zero; the Field carries its own size.
func (t FieldType) Width() int {
	switch t {
	case TypeU8:
		return 1
	case TypeU16:
		return 2
	case TypeU32, TypeI32:
		return 4
	case TypeU64:
		return 8
	case TypeU128:
		return 16
	case TypeAddress:
		return AddressLen
	default:
		return 0
	}
}

// Field names one value inside a pool account layout.
type Field struct {
	Name   string
	Offset int
	Type   FieldType
	// Size overrides the type width for TypeBytes regions.
	Size int
	// Optional fields may extend past the layout's minimum length. The
	// bonding-curve reserve counters are the only users: their sub-region can
	// be missing from a snapshot whose discriminator still matches.
	Optional bool
}

func (f Field) width() int {
	if f.Type == TypeBytes {
		return f.Size
	}
	return f.Type.Width()
}

func (f Field) end() int { return f.Offset + f.width() }

// Layout is a named, validated offset table for one protocol's pool account.
type Layout struct {
	Protocol Protocol
	// MinLen is the smallest account size the decoder accepts. Shorter
	// buffers are rejected outright, never partially decoded.
	MinLen int
	Fields []Field
}

// Validate checks that every required field lies within MinLen, that no two
// fields overlap, and that widths are sane. Layouts are checked once at
// package init instead of being trusted on every decode.
func (l Layout) Validate() error {
	if l.MinLen < DiscriminatorLen {
		return fmt.Errorf("layout %s: min length %d below discriminator", l.Protocol, l.MinLen)
	}
	fields := make([]Field, len(l.Fields))
	copy(fields, l.Fields)
	sort.Slice(fields, func(i, j int) bool { return fields[i].Offset < fields[j].Offset })

	prevEnd := 0
	prevName := ""
	for _, f := range fields {
		if f.width() <= 0 {
			return fmt.Errorf("layout %s: field %s has zero width", l.Protocol, f.Name)
		}
		if f.Offset < prevEnd {
			return fmt.Errorf("layout %s: field %s overlaps %s", l.Protocol, f.Name, prevName)
		}
		if !f.Optional && f.end() > l.MinLen {
			return fmt.Errorf("layout %s: field %s ends at %d past min length %d",
				l.Protocol, f.Name, f.end(), l.MinLen)
		}
		prevEnd = f.end()
		prevName = f.Name
	}
	return nil
}

// Field looks up a declared field by name.
func (l Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// MustValidate panics when the layout is malformed. Protocol packages call it
// from init so a bad offset table fails fast at process start.
func MustValidate(l Layout) Layout {
	if err := l.Validate(); err != nil {
		panic(err)
	}
	return l
}

// CheckMinLen rejects buffers below the layout's declared minimum before any
// field is decoded.
func (l Layout) CheckMinLen(data []byte) error {
	if len(data) < l.MinLen {
		return NewTruncatedError(len(data), l.MinLen)
	}
	return nil
}
