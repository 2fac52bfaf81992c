package gds

import "bytes"

// OneOrMany decodes a field the GDS sends either as a single object or as an
// array of objects. It always marshals back as an array.
type OneOrMany[T any] []T

func (o *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, nullJSON) {
		*o = nil
		return nil
	}

	if data[0] == '[' {
		var items []T
		if err := unmarshalLenient(data, &items); err != nil {
			return err
		}
		*o = items
		return nil
	}

	var item T
	if err := unmarshalLenient(data, &item); err != nil {
		return err
	}
	*o = OneOrMany[T]{item}

	return nil
}

// First returns a pointer to the first element, nil when empty.
func (o OneOrMany[T]) First() *T {
	if len(o) == 0 {
		return nil
	}

	return &o[0]
}
