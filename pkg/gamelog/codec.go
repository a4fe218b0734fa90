package gamelog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

const typeKey = "type"

// Decode parses one wire record: a flat JSON object with the kind under
// "type" and the payload fields beside it. The payload must match the kind's
// shape exactly (no unknown fields, no missing required fields, tuples of the
// right arity) and pass Validate.
func Decode(data []byte) (Event, error) {
	var head map[string]json.RawMessage
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, &MalformedError{Err: fmt.Errorf("expected JSON object: %w", err)}
	}
	if head == nil {
		return nil, &MalformedError{Err: fmt.Errorf("expected JSON object, got null")}
	}

	rawKind, ok := head[typeKey]
	if !ok {
		return nil, &MalformedError{Err: fmt.Errorf("missing %q", typeKey)}
	}
	var kind Kind
	if err := json.Unmarshal(rawKind, &kind); err != nil || kind == "" {
		return nil, &MalformedError{Err: fmt.Errorf("%q must be a non-empty string", typeKey)}
	}

	e, ok := New(kind)
	if !ok {
		return nil, &UnknownKindError{Kind: kind}
	}

	if err := checkObject(head, reflect.TypeOf(e).Elem(), "", typeKey); err != nil {
		return nil, &MalformedError{Kind: kind, Err: err}
	}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, &MalformedError{Kind: kind, Err: err}
	}
	if err := e.Validate(); err != nil {
		return nil, &MalformedError{Kind: kind, Err: err}
	}
	return e, nil
}

// Encode renders e in the wire format read by Decode.
func Encode(e Event) ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s record: %w", e.Kind(), err)
	}
	tag, err := json.Marshal(e.Kind())
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(tag)
	if inner := bytes.TrimSpace(payload[1 : len(payload)-1]); len(inner) > 0 {
		buf.WriteByte(',')
		buf.Write(inner)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Clone returns a deep copy of e made through its wire form, so the copy
// shares no slices or pointers with e.
func Clone(e Event) (Event, error) {
	data, err := Encode(e)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// decodeStrict checks data against the shape of *v and then decodes it.
func decodeStrict(data []byte, v any, path string) error {
	if err := checkShape(data, reflect.TypeOf(v).Elem(), path); err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", displayPath(path), err)
	}
	return nil
}

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

// checkShape walks data alongside t. Objects are checked for unknown and
// missing fields; arrays are walked element by element. Types with their own
// UnmarshalJSON check themselves. Scalar type mismatches are left to
// encoding/json.
func checkShape(data []byte, t reflect.Type, path string) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(unmarshalerType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
			return fmt.Errorf("%s: expected object", displayPath(path))
		}
		return checkObject(obj, t, path, "")

	case reflect.Slice, reflect.Array:
		if isNull(data) {
			return nil
		}
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("%s: expected array", displayPath(path))
		}
		for i, item := range items {
			if err := checkShape(item, t.Elem(), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkObject(obj map[string]json.RawMessage, t reflect.Type, path, skip string) error {
	fields := jsonFields(t)

	for key := range obj {
		if key == skip {
			continue
		}
		if _, ok := fields[key]; !ok {
			return fmt.Errorf("%s: unknown field", displayPath(joinPath(path, key)))
		}
	}

	for name, f := range fields {
		raw, present := obj[name]
		fieldPath := joinPath(path, name)
		if !present {
			if f.optional {
				continue
			}
			return fmt.Errorf("%s: required field missing", displayPath(fieldPath))
		}
		if isNull(raw) {
			// A nil list encodes as null; everything else required must be set.
			if f.optional || f.typ.Kind() == reflect.Slice {
				continue
			}
			return fmt.Errorf("%s: required field is null", displayPath(fieldPath))
		}
		if err := checkShape(raw, f.typ, fieldPath); err != nil {
			return err
		}
	}
	return nil
}

type jsonField struct {
	typ      reflect.Type
	optional bool
}

func jsonFields(t reflect.Type) map[string]jsonField {
	fields := make(map[string]jsonField, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = sf.Name
		}
		fields[name] = jsonField{
			typ:      sf.Type,
			optional: strings.Contains(opts, "omitempty"),
		}
	}
	return fields
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

func joinPath(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func displayPath(path string) string {
	if path == "" {
		return "record"
	}
	return path
}
