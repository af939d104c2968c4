// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package frontmatter converts between structured content metadata and the
// delimited text format used for markdown files in the content repository:
//
//	---
//	title: "Hello"
//	draft: false
//	readTime: 5
//	tags:
//	  - "marketing"
//	---
//
//	Body text...
//
// This is deliberately not a general YAML parser. The grammar is limited to
// quoted strings, bare booleans and numbers, and flat sequences of quoted
// strings; it only needs to round-trip what Serialize itself produces.
package frontmatter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is returned by Parse when the input does not have the
// required delimiter structure.
var ErrMalformed = errors.New("frontmatter: missing or malformed delimiter block")

const (
	delimiter  = "---"
	itemPrefix = "  - "
)

// Field is a single metadata entry. Order matters: Serialize emits fields
// in slice order, and Parse preserves encounter order.
type Field struct {
	Key   string
	Value any // string, bool, int64, float64, or []string
}

// Document is the parsed form of a frontmatter file.
type Document struct {
	Fields []Field
	Body   string
}

// Get returns the value for a key and whether it was present.
func (d *Document) Get(key string) (any, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// String returns the string value for a key, or "" if absent or not a string.
func (d *Document) String(key string) string {
	v, _ := d.Get(key)
	s, _ := v.(string)
	return s
}

// Bool returns the boolean value for a key, or false if absent or not a bool.
func (d *Document) Bool(key string) bool {
	v, _ := d.Get(key)
	b, _ := v.(bool)
	return b
}

// Int returns the integer value for a key, or 0 if absent. Float values
// are truncated.
func (d *Document) Int(key string) int {
	switch v, _ := d.Get(key); n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Strings returns the string-sequence value for a key, or nil.
func (d *Document) Strings(key string) []string {
	v, _ := d.Get(key)
	s, _ := v.([]string)
	return s
}

// Serialize renders fields and body into the delimited text format.
// Strings are quoted; booleans and numbers are emitted bare; sequences
// emit one indented item line per element, or "[]" when empty.
func Serialize(doc *Document) string {
	var b strings.Builder
	b.WriteString(delimiter)
	b.WriteByte('\n')

	for _, f := range doc.Fields {
		switch v := f.Value.(type) {
		case []string:
			if len(v) == 0 {
				fmt.Fprintf(&b, "%s: []\n", f.Key)
				continue
			}
			fmt.Fprintf(&b, "%s:\n", f.Key)
			for _, item := range v {
				fmt.Fprintf(&b, "%s%q\n", itemPrefix, item)
			}
		case string:
			fmt.Fprintf(&b, "%s: %q\n", f.Key, v)
		case bool:
			fmt.Fprintf(&b, "%s: %t\n", f.Key, v)
		case int:
			fmt.Fprintf(&b, "%s: %d\n", f.Key, v)
		case int64:
			fmt.Fprintf(&b, "%s: %d\n", f.Key, v)
		case float64:
			fmt.Fprintf(&b, "%s: %s\n", f.Key, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			fmt.Fprintf(&b, "%s: %q\n", f.Key, fmt.Sprint(v))
		}
	}

	b.WriteString(delimiter)
	b.WriteString("\n\n")
	b.WriteString(doc.Body)
	return b.String()
}

// Parse splits the input into its metadata block and body and decodes the
// metadata with a small line-oriented state machine. Inputs without the
// leading delimiter, metadata block, and closing delimiter fail with
// ErrMalformed.
func Parse(input string) (*Document, error) {
	rest, ok := strings.CutPrefix(input, delimiter+"\n")
	if !ok {
		return nil, ErrMalformed
	}

	block, body, ok := strings.Cut(rest, "\n"+delimiter+"\n")
	if !ok {
		return nil, ErrMalformed
	}
	// Serialize writes a blank line between the closing delimiter and the
	// body; strip exactly one so round-trips preserve the body verbatim.
	body = strings.TrimPrefix(body, "\n")

	doc := &Document{Body: body}

	// current points at the field accumulating sequence items, if any.
	var current *Field

	for _, line := range strings.Split(block, "\n") {
		switch {
		case strings.HasPrefix(line, itemPrefix):
			if current == nil {
				continue // stray item line, ignored
			}
			item := unquote(strings.TrimPrefix(line, itemPrefix))
			seq, _ := current.Value.([]string)
			current.Value = append(seq, item)

		case strings.Contains(line, ": ") || strings.HasSuffix(line, ":"):
			key, raw, found := strings.Cut(line, ": ")
			if !found {
				key = strings.TrimSuffix(line, ":")
				raw = ""
			}
			doc.Fields = append(doc.Fields, Field{Key: key, Value: coerce(raw)})
			last := &doc.Fields[len(doc.Fields)-1]
			// Only an empty value opens a sequence; the explicit "[]"
			// marker is a closed, empty sequence.
			if _, isSeq := last.Value.([]string); isSeq && raw != "[]" {
				current = last
			} else {
				current = nil
			}

		default:
			// Anything else (blank lines, comments) is ignored.
			current = nil
		}
	}

	return doc, nil
}

// coerce converts a raw scalar text into its typed value. Empty values and
// the empty-sequence marker become string sequences; "true"/"false" become
// booleans; values that parse entirely as numbers become numeric; anything
// else is a string with surrounding quotes stripped.
func coerce(raw string) any {
	if raw == "" || raw == "[]" {
		return []string{}
	}

	stripped := unquote(raw)
	if stripped != raw {
		return stripped
	}

	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// unquote strips one pair of surrounding double quotes, decoding standard
// escapes when the content allows it.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	return s
}
