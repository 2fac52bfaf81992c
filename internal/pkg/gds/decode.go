package gds

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

var (
	nullJSON        = []byte("null")
	unmarshalerType = reflect.TypeFor[json.Unmarshaler]()
)

// unmarshalLenient decodes data into v field by field. A nested field whose
// JSON shape does not fit its Go type is left at its zero value instead of
// failing the document. An error is returned only when data itself does not
// fit v.
func unmarshalLenient(data []byte, v any) error {
	if !decodeLenient(data, reflect.ValueOf(v).Elem()) {
		return fmt.Errorf("cannot decode %s into %T", shapeOf(data), v)
	}

	return nil
}

func decodeLenient(data []byte, dst reflect.Value) bool {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, nullJSON) {
		return true
	}

	if dst.Kind() == reflect.Pointer {
		elem := reflect.New(dst.Type().Elem())
		if !decodeLenient(data, elem.Elem()) {
			return false
		}
		dst.Set(elem)
		return true
	}

	// a custom decoder writes into a scratch value so a failure leaves dst untouched
	if reflect.PointerTo(dst.Type()).Implements(unmarshalerType) {
		tmp := reflect.New(dst.Type())
		if err := tmp.Interface().(json.Unmarshaler).UnmarshalJSON(data); err != nil {
			return false
		}
		dst.Set(tmp.Elem())
		return true
	}

	switch dst.Kind() {
	case reflect.Struct:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return false
		}
		decodeFields(fields, dst)
		return true

	case reflect.Slice:
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return false
		}
		// unreadable elements stay as zero values so positions are kept
		out := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, item := range items {
			decodeLenient(item, out.Index(i))
		}
		dst.Set(out)
		return true

	default:
		tmp := reflect.New(dst.Type())
		if err := json.Unmarshal(data, tmp.Interface()); err != nil {
			return false
		}
		dst.Set(tmp.Elem())
		return true
	}
}

func decodeFields(fields map[string]json.RawMessage, dst reflect.Value) {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			decodeFields(fields, dst.Field(i))
			continue
		}

		name := jsonName(field)
		if name == "-" {
			continue
		}

		if raw, ok := lookupField(fields, name); ok {
			decodeLenient(raw, dst.Field(i))
		}
	}
}

func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" {
		return field.Name
	}

	return name
}

// lookupField matches keys the way encoding/json does: exact first, then
// case-insensitively.
func lookupField(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	if raw, ok := fields[name]; ok {
		return raw, true
	}

	for key, raw := range fields {
		if strings.EqualFold(key, name) {
			return raw, true
		}
	}

	return nil, false
}

func shapeOf(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "empty input"
	}

	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	default:
		return "number"
	}
}
