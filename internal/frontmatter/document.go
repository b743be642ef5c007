// Package frontmatter reads and writes markdown files that carry a YAML
// header between --- fences. The header is kept as a typed, ordered
// mapping so documents can be edited and re-serialized without disturbing
// key order or the body text.
package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// Document is a markdown file split into a structured header and an
// untouched body. A nil header means the file had no frontmatter.
type Document struct {
	header *yaml.Node // mapping node; nil when absent
	Body   string
}

// Parse splits content into frontmatter header and body. Content without
// a leading fence (or with an unterminated one) yields a header-less
// document whose body is the full content.
func Parse(content string) (*Document, error) {
	if !strings.HasPrefix(content, fence+"\n") && content != fence {
		return &Document{Body: content}, nil
	}

	rest := strings.TrimPrefix(content, fence+"\n")
	var headerRaw, body string
	switch {
	case rest == fence:
		// Empty header, no body.
	case strings.HasPrefix(rest, fence+"\n"):
		body = rest[len(fence)+1:]
	default:
		end := strings.Index(rest, "\n"+fence+"\n")
		if end >= 0 {
			headerRaw = rest[:end]
			body = rest[end+len(fence)+2:]
		} else if strings.HasSuffix(rest, "\n"+fence) {
			headerRaw = strings.TrimSuffix(rest, "\n"+fence)
		} else {
			// Unterminated fence: not frontmatter.
			return &Document{Body: content}, nil
		}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(headerRaw), &doc); err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}

	if len(doc.Content) == 0 {
		return &Document{header: emptyMapping(), Body: body}, nil
	}
	if doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("frontmatter is not a key/value mapping")
	}
	return &Document{header: doc.Content[0], Body: body}, nil
}

// HasHeader reports whether the document carries frontmatter.
func (d *Document) HasHeader() bool {
	return d.header != nil
}

// Keys returns the header keys in document order.
func (d *Document) Keys() []string {
	if d.header == nil {
		return nil
	}
	keys := make([]string, 0, len(d.header.Content)/2)
	for i := 0; i+1 < len(d.header.Content); i += 2 {
		keys = append(keys, d.header.Content[i].Value)
	}
	return keys
}

// Has reports whether the header contains key.
func (d *Document) Has(key string) bool {
	return d.valueNode(key) != nil
}

// Get returns the scalar value for key. The second return is false when
// the key is absent or its value is not a scalar.
func (d *Document) Get(key string) (string, bool) {
	node := d.valueNode(key)
	if node == nil || node.Kind != yaml.ScalarNode {
		return "", false
	}
	return node.Value, true
}

// Set stores a scalar value for key, appending the key when new.
func (d *Document) Set(key, value string) {
	d.setNode(key, &yaml.Node{Kind: yaml.ScalarNode, Value: value})
}

// Delete removes key from the header. It reports whether the key existed.
func (d *Document) Delete(key string) bool {
	if d.header == nil {
		return false
	}
	for i := 0; i+1 < len(d.header.Content); i += 2 {
		if d.header.Content[i].Value == key {
			d.header.Content = append(d.header.Content[:i], d.header.Content[i+2:]...)
			return true
		}
	}
	return false
}

// Serialize re-emits the document: header keys in their original order
// (appended keys last), two-space indent, body byte-for-byte untouched.
// A document without header keys serializes to just the body.
func (d *Document) Serialize() (string, error) {
	if d.header == nil || len(d.header.Content) == 0 {
		return d.Body, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.header); err != nil {
		return "", fmt.Errorf("serializing frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("serializing frontmatter: %w", err)
	}

	return fence + "\n" + buf.String() + fence + "\n" + d.Body, nil
}

// valueNode returns the value node for key, nil when absent.
func (d *Document) valueNode(key string) *yaml.Node {
	if d.header == nil {
		return nil
	}
	for i := 0; i+1 < len(d.header.Content); i += 2 {
		if d.header.Content[i].Value == key {
			return d.header.Content[i+1]
		}
	}
	return nil
}

// setNode replaces the value node for key, appending the pair when new.
func (d *Document) setNode(key string, value *yaml.Node) {
	if d.header == nil {
		d.header = emptyMapping()
	}
	for i := 0; i+1 < len(d.header.Content); i += 2 {
		if d.header.Content[i].Value == key {
			d.header.Content[i+1] = value
			return
		}
	}
	d.header.Content = append(d.header.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		value,
	)
}

func emptyMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}
