package toml

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Marshal encodes a struct as a TOML document
//
// Fields are written in declaration order: scalars and inline arrays first,
// then nested structs as [tables] and struct slices as [[arrays of tables]].
// Nil pointers and `omitempty` zero values are skipped. Maps are not supported.
func Marshal(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("toml marshal: nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("toml marshal: root must be a struct, got %s", rv.Kind())
	}

	var buf bytes.Buffer
	if err := writeTable(&buf, "", rv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type field struct {
	name string
	val  reflect.Value
}

// tableFields splits a struct's present fields into inline values and sub-tables
func tableFields(rv reflect.Value) (inline, tables []field) {
	typ := rv.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		name, skip := fieldKey(f)
		if skip {
			continue
		}
		fv := rv.Field(i)
		for fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				break
			}
			fv = fv.Elem()
		}
		if fv.Kind() == reflect.Pointer {
			continue
		}
		if strings.Contains(f.Tag.Get("toml"), ",omitempty") && fv.IsZero() {
			continue
		}
		if isTable(fv) {
			tables = append(tables, field{name, fv})
		} else {
			inline = append(inline, field{name, fv})
		}
	}
	return inline, tables
}

func isTable(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Struct:
		return true
	case reflect.Slice:
		elem := v.Type().Elem()
		for elem.Kind() == reflect.Pointer {
			elem = elem.Elem()
		}
		return elem.Kind() == reflect.Struct && v.Len() > 0
	}
	return false
}

func writeTable(buf *bytes.Buffer, prefix string, rv reflect.Value) error {
	inline, tables := tableFields(rv)

	for _, f := range inline {
		buf.WriteString(quoteKey(f.name))
		buf.WriteString(" = ")
		if err := writeValue(buf, f.val); err != nil {
			return fmt.Errorf("toml marshal %s: %w", join(prefix, f.name), err)
		}
		buf.WriteByte('\n')
	}

	for _, f := range tables {
		path := join(prefix, quoteKey(f.name))
		if f.val.Kind() == reflect.Struct {
			fmt.Fprintf(buf, "\n[%s]\n", path)
			if err := writeTable(buf, path, f.val); err != nil {
				return err
			}
			continue
		}
		for i := 0; i < f.val.Len(); i++ {
			elem := f.val.Index(i)
			for elem.Kind() == reflect.Pointer && !elem.IsNil() {
				elem = elem.Elem()
			}
			if elem.Kind() != reflect.Struct {
				continue
			}
			fmt.Fprintf(buf, "\n[[%s]]\n", path)
			if err := writeTable(buf, path, elem); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeValue(buf *bytes.Buffer, v reflect.Value) error {
	switch v.Kind() {
	case reflect.String:
		buf.WriteString(quote(v.String()))
	case reflect.Bool:
		buf.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		buf.WriteString(formatFloat(v.Float(), v.Type().Bits()))
	case reflect.Slice, reflect.Array:
		buf.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := writeValue(buf, v.Index(i)); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return fmt.Errorf("nil inside array")
		}
		return writeValue(buf, v.Elem())
	default:
		return fmt.Errorf("unsupported kind %s", v.Kind())
	}
	return nil
}

// formatFloat always yields a float literal, never an integer-looking one
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func quoteKey(k string) string {
	if k == "" {
		return `""`
	}
	for _, r := range k {
		if !isBareChar(r) {
			return quote(k)
		}
	}
	return k
}
