package tree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Parse decodes a JSON checklist document, keeping object key order. The
// input must hold exactly one JSON value.
func Parse(b []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	var doc json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, errors.New("tree: empty json value")
		}
		return Value{}, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("tree: unexpected data after top-level value")
	}
	return parseValue(doc)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	out, err := parseValue(b)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func parseValue(raw []byte) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Value{}, errors.New("tree: empty json value")
	}
	switch raw[0] {
	case '{':
		return parseGroup(raw)
	case '[':
		// Arrays are opaque leaves; keep them verbatim.
		return Scalar(json.RawMessage(append([]byte(nil), raw...))), nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return Value{}, err
	}
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		if t {
			return True(), nil
		}
		return False(), nil
	default:
		return Scalar(t), nil
	}
}

func parseGroup(raw []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	g := NewGroup()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("tree: unexpected object key %v", tok)
		}
		var child json.RawMessage
		if err := dec.Decode(&child); err != nil {
			return Value{}, fmt.Errorf("tree: %q: %w", key, err)
		}
		v, err := parseValue(child)
		if err != nil {
			return Value{}, fmt.Errorf("tree: %q: %w", key, err)
		}
		g.Set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return GroupValue(g), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindTrue:
		buf.WriteString("true")
	case KindFalse:
		buf.WriteString("false")
	case KindNull:
		buf.WriteString("null")
	case KindScalar:
		b, err := json.Marshal(v.scalar)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindGroup:
		g, _ := v.Group()
		if g == nil {
			g = NewGroup()
		}
		buf.WriteByte('{')
		first := true
		writeEntry := func(key string, child Value) error {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			kb, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			return child.writeJSON(buf)
		}
		if meta, ok := g.Metadata(); ok {
			if err := writeEntry(CheckableKey, meta); err != nil {
				return err
			}
		}
		for _, key := range g.keys {
			if err := writeEntry(key, g.children[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("tree: unknown kind %d", v.kind)
	}
	return nil
}
