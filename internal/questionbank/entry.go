package questionbank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of a questions file entry that the maintenance commands touch.
const (
	KeyID         = "id"
	KeyPrompt     = "vraag"
	KeyCategories = "categories"
	KeyReference  = "biblicalReference"
)

var ErrNotObject = errors.New("question entry is not an object")

// Entry is one element of the questions file kept as raw JSON. Keys keep
// their file order and values are written back byte for byte unless set.
type Entry struct {
	keys   []string
	values map[string]json.RawMessage
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotObject
	}

	e.keys = nil
	e.values = make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("entry key %q: %w", key, err)
		}
		if _, dup := e.values[key]; !dup {
			e.keys = append(e.keys, key)
		}
		e.values[key] = value
	}
	_, err = dec.Token()
	return err
}

func (e Entry) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := rawValue(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(e.values[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (e Entry) Keys() []string { return append([]string(nil), e.keys...) }

func (e Entry) Has(key string) bool {
	_, ok := e.values[key]
	return ok
}

// String returns the value of key when it holds a JSON string.
func (e Entry) String(key string) (string, bool) {
	raw, ok := e.values[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// SetString stores value under key. New keys go last, or first when front is set.
func (e *Entry) SetString(key, value string, front bool) {
	raw, _ := rawValue(value)
	e.set(key, raw, front)
}

func (e *Entry) set(key string, raw json.RawMessage, front bool) {
	if e.values == nil {
		e.values = make(map[string]json.RawMessage)
	}
	if _, ok := e.values[key]; !ok {
		if front {
			e.keys = append([]string{key}, e.keys...)
		} else {
			e.keys = append(e.keys, key)
		}
	}
	e.values[key] = raw
}

func (e Entry) clone() Entry {
	c := Entry{
		keys:   append([]string(nil), e.keys...),
		values: make(map[string]json.RawMessage, len(e.values)),
	}
	for k, v := range e.values {
		c.values[k] = v
	}
	return c
}

// DecodeEntries parses a questions document without interpreting its entries.
func DecodeEntries(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Encode renders v the way the questions file is stored: two-space indent,
// a trailing newline and no HTML escaping of &, < or >.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rawValue(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
