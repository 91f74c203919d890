package node

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// JSON encoding uses the usual HTML AST shape: nodes are objects with
// optional "tag", "attrs" and "content" keys, text is a plain string. Attrs
// keep their order in both directions.

// MarshalJSON encodes the node. A tag-less node is written with "tag": false.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	if n.Tag == "" {
		buf.WriteString(`"tag":false`)
	} else {
		tag, err := json.Marshal(n.Tag)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`"tag":`)
		buf.Write(tag)
	}
	if n.Attrs != nil {
		attrs, err := n.Attrs.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"attrs":`)
		buf.Write(attrs)
	}
	if n.Content != nil {
		content, err := n.Content.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"content":`)
		buf.Write(content)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a node object. "tag" may be a string or false.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw struct {
		Tag     json.RawMessage `json:"tag"`
		Attrs   *Attrs          `json:"attrs"`
		Content *Content        `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*n = Node{}
	if len(raw.Tag) > 0 && !bytes.Equal(raw.Tag, []byte("false")) && !bytes.Equal(raw.Tag, []byte("null")) {
		if err := json.Unmarshal(raw.Tag, &n.Tag); err != nil {
			return fmt.Errorf("node: tag: %w", err)
		}
	}
	if raw.Attrs != nil {
		n.Attrs = *raw.Attrs
	}
	if raw.Content != nil {
		n.Content = *raw.Content
	}
	return nil
}

// MarshalJSON writes attrs as an object in their stored order.
func (a Attrs) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, attr := range a {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attr.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an attribute object keeping key order. Non-string
// values are stored in their JSON form; true becomes an empty value.
func (a *Attrs) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*a = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("node: attrs must be an object")
	}

	out := Attrs{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("node: attrs key must be a string")
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("node: attrs %q: %w", key, err)
		}
		out = append(out, Attr{Key: key, Value: attrValue(value)})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*a = out
	return nil
}

func attrValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	switch string(bytes.TrimSpace(raw)) {
	case "true", "null":
		return ""
	}
	return string(raw)
}

// MarshalJSON encodes content as an array of strings and node objects.
func (c Content) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	for idx, entry := range c {
		if idx > 0 {
			buf.WriteByte(',')
		}
		var (
			encoded []byte
			err     error
		)
		switch v := entry.(type) {
		case Text:
			encoded, err = json.Marshal(string(v))
		case *Node:
			encoded, err = v.MarshalJSON()
		default:
			err = fmt.Errorf("node: unsupported content item %T", entry)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an array of strings and node objects. A bare string
// or object is accepted as a single-item array.
func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*c = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] != '[' {
		trimmed = append(append([]byte{'['}, trimmed...), ']')
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	out := make(Content, 0, len(raw))
	for idx, entry := range raw {
		entry = bytes.TrimSpace(entry)
		if len(entry) == 0 {
			continue
		}
		switch entry[0] {
		case '"':
			var s string
			if err := json.Unmarshal(entry, &s); err != nil {
				return fmt.Errorf("node: content[%d]: %w", idx, err)
			}
			out = append(out, Text(s))
		case '{':
			n := &Node{}
			if err := n.UnmarshalJSON(entry); err != nil {
				return fmt.Errorf("node: content[%d]: %w", idx, err)
			}
			out = append(out, n)
		case 'n':
			continue
		default:
			return fmt.Errorf("node: content[%d]: unsupported value %s", idx, entry)
		}
	}
	*c = out
	return nil
}
