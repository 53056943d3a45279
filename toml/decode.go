package toml

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"
)

// Unmarshal parses src and decodes it into v, ignoring keys v has no field for
func Unmarshal(src []byte, v any) error {
	_, err := UnmarshalMeta(src, v)
	return err
}

// Meta describes what a decode consumed
type Meta struct {
	// Undecoded lists dotted key paths present in the document but absent from the target
	Undecoded []string
}

// UnmarshalMeta is Unmarshal that also reports keys the target did not consume
func UnmarshalMeta(src []byte, v any) (Meta, error) {
	doc, err := Parse(src)
	if err != nil {
		return Meta{}, err
	}
	d := &decoder{}
	if err := d.decode(doc, v); err != nil {
		return Meta{}, err
	}
	slices.Sort(d.undecoded)
	return Meta{Undecoded: d.undecoded}, nil
}

// Decode maps an already parsed Table onto v
func Decode(doc Table, v any) error {
	return (&decoder{}).decode(doc, v)
}

// DecodeError locates a type mismatch by its key path
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("toml key %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type decoder struct {
	undecoded []string
}

func (d *decoder) decode(doc Table, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("toml decode target must be a non-nil pointer, got %T", v)
	}
	return d.value("", doc, rv.Elem())
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func (d *decoder) fail(path string, format string, args ...any) error {
	return &DecodeError{Path: path, Err: fmt.Errorf(format, args...)}
}

func (d *decoder) value(path string, data any, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Pointer:
		// Pointer fields are allocated only when the key is present, so nil means "absent"
		elem := reflect.New(rv.Type().Elem())
		if err := d.value(path, data, elem.Elem()); err != nil {
			return err
		}
		rv.Set(elem)
		return nil

	case reflect.Struct:
		t, ok := data.(Table)
		if !ok {
			return d.fail(path, "expected table, got %T", data)
		}
		return d.structFields(path, t, rv)

	case reflect.Map:
		t, ok := data.(Table)
		if !ok {
			return d.fail(path, "expected table, got %T", data)
		}
		if rv.Type().Key().Kind() != reflect.String {
			return d.fail(path, "map key must be string")
		}
		m := reflect.MakeMapWithSize(rv.Type(), len(t))
		for k, sub := range t {
			elem := reflect.New(rv.Type().Elem()).Elem()
			if err := d.value(join(path, k), sub, elem); err != nil {
				return err
			}
			m.SetMapIndex(reflect.ValueOf(k).Convert(rv.Type().Key()), elem)
		}
		rv.Set(m)
		return nil

	case reflect.Slice:
		items, err := asList(data)
		if err != nil {
			return d.fail(path, "%v", err)
		}
		s := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, item := range items {
			if err := d.value(fmt.Sprintf("%s[%d]", path, i), item, s.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(s)
		return nil

	case reflect.Array:
		items, err := asList(data)
		if err != nil {
			return d.fail(path, "%v", err)
		}
		if len(items) != rv.Len() {
			return d.fail(path, "expected %d elements, got %d", rv.Len(), len(items))
		}
		for i, item := range items {
			if err := d.value(fmt.Sprintf("%s[%d]", path, i), item, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Interface:
		rv.Set(reflect.ValueOf(data))
		return nil

	case reflect.String:
		s, ok := data.(string)
		if !ok {
			return d.fail(path, "expected string, got %T", data)
		}
		rv.SetString(s)
		return nil

	case reflect.Bool:
		b, ok := data.(bool)
		if !ok {
			return d.fail(path, "expected boolean, got %T", data)
		}
		rv.SetBool(b)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := data.(int64)
		if !ok {
			return d.fail(path, "expected integer, got %T", data)
		}
		if rv.OverflowInt(n) {
			return d.fail(path, "%d overflows %s", n, rv.Type())
		}
		rv.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := data.(int64)
		if !ok || n < 0 || rv.OverflowUint(uint64(n)) {
			return d.fail(path, "expected unsigned integer in range of %s, got %v", rv.Type(), data)
		}
		rv.SetUint(uint64(n))
		return nil

	case reflect.Float32, reflect.Float64:
		// Integers are accepted where floats are expected: "gravity = -10"
		switch f := data.(type) {
		case float64:
			if rv.Kind() == reflect.Float32 && !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
				return d.fail(path, "%g overflows float32", f)
			}
			rv.SetFloat(f)
		case int64:
			rv.SetFloat(float64(f))
		default:
			return d.fail(path, "expected number, got %T", data)
		}
		return nil
	}
	return d.fail(path, "unsupported target kind %s", rv.Kind())
}

func (d *decoder) structFields(path string, t Table, rv reflect.Value) error {
	typ := rv.Type()
	used := make(map[string]bool, len(t))

	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		name, skip := fieldKey(f)
		if skip {
			continue
		}
		data, ok := t[name]
		if !ok {
			continue
		}
		used[name] = true
		if err := d.value(join(path, name), data, rv.Field(i)); err != nil {
			return err
		}
	}

	for k := range t {
		if !used[k] {
			d.undecoded = append(d.undecoded, join(path, k))
		}
	}
	return nil
}

// fieldKey resolves the document key for a struct field from its toml tag
func fieldKey(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("toml")
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}
	if name == "" {
		name = f.Name
	}
	return name, false
}

func asList(data any) ([]any, error) {
	switch v := data.(type) {
	case []any:
		return v, nil
	case []Table:
		out := make([]any, len(v))
		for i, t := range v {
			out[i] = t
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected array, got %T", data)
}
