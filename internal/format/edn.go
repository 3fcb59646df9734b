package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN writes an EDN rendering of v.
//
// v is first marshalled to JSON (so json tags and custom marshalers apply) and
// the JSON token stream is then re-encoded. Object key order is kept, which
// matters for checklist trees. Keys that are valid keywords become keywords;
// anything else (item names with spaces, identifiers) stays a string key.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var buf bytes.Buffer
	enc := ednEncoder{dec: dec, pretty: pretty, indent: 2}
	if err := enc.writeValue(&buf, 0); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

type ednEncoder struct {
	dec    *json.Decoder
	pretty bool
	indent int
}

func (e ednEncoder) writeValue(buf *bytes.Buffer, level int) error {
	tok, err := e.dec.Token()
	if err != nil {
		return err
	}
	switch t := tok.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case string:
		buf.WriteString(strconv.Quote(t))
	case json.Number:
		buf.WriteString(t.String())
	case json.Delim:
		switch t {
		case '[':
			return e.writeColl(buf, level, '[', ']', false)
		case '{':
			return e.writeColl(buf, level, '{', '}', true)
		default:
			return fmt.Errorf("edn: unexpected %q", t)
		}
	default:
		return fmt.Errorf("edn: unexpected token %T", tok)
	}
	return nil
}

func (e ednEncoder) writeColl(buf *bytes.Buffer, level int, open, close byte, isMap bool) error {
	buf.WriteByte(open)
	n := 0
	for e.dec.More() {
		if n > 0 && !e.pretty {
			buf.WriteByte(' ')
		}
		if e.pretty {
			buf.WriteByte('\n')
			buf.WriteString(strings.Repeat(" ", (level+1)*e.indent))
		}
		if isMap {
			tok, err := e.dec.Token()
			if err != nil {
				return err
			}
			key, _ := tok.(string)
			buf.WriteString(ednKey(key))
			buf.WriteByte(' ')
		}
		if err := e.writeValue(buf, level+1); err != nil {
			return err
		}
		n++
	}
	if _, err := e.dec.Token(); err != nil {
		return err
	}
	if e.pretty && n > 0 {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(" ", level*e.indent))
	}
	buf.WriteByte(close)
	return nil
}

func ednKey(s string) string {
	if isKeyword(s) {
		return ":" + s
	}
	return strconv.Quote(s)
}

func isKeyword(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_', r == '*', r == '?', r == '!', r == '-':
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}
