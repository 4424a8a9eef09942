// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textenc resolves output text encodings by name and encodes note
// bodies strictly: text that the encoding cannot represent is an error,
// never silently replaced.
package textenc

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

// ErrUnknownEncoding is returned by Lookup for names no index recognizes.
var ErrUnknownEncoding = errors.New("unknown encoding")

// UnrepresentableError reports the first rune of a text that the target
// encoding has no mapping for.
type UnrepresentableError struct {
	Encoding string
	Rune     rune
	// Offset is the byte offset of Rune in the source text.
	Offset int
}

func (e *UnrepresentableError) Error() string {
	return fmt.Sprintf("%q codec can't encode character %U at position %d", e.Encoding, e.Rune, e.Offset)
}

// Codec encodes UTF-8 text into a named encoding.
type Codec struct {
	name string
	enc  encoding.Encoding
}

// Lookup returns the Codec for name. IANA names and aliases are tried
// first, then the WHATWG labels browsers accept (e.g. "utf8", "cp1252").
func Lookup(name string) (*Codec, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownEncoding)
	}

	if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
		return &Codec{name: name, enc: enc}, nil
	}
	if enc, err := htmlindex.Get(name); err == nil && enc != nil {
		return &Codec{name: name, enc: enc}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, name)
}

// Name returns the name the Codec was looked up by.
func (c *Codec) Name() string {
	return c.name
}

// Encode converts text to the Codec's encoding. It returns an
// *UnrepresentableError when text contains a rune the encoding cannot hold.
func (c *Codec) Encode(text string) ([]byte, error) {
	out, err := c.enc.NewEncoder().Bytes([]byte(text))
	if err == nil {
		return out, nil
	}
	if uerr := c.firstUnrepresentable(text); uerr != nil {
		return nil, uerr
	}
	return nil, fmt.Errorf("encoding to %s: %w", c.name, err)
}

// firstUnrepresentable finds the first rune in text that fails to encode.
func (c *Codec) firstUnrepresentable(text string) *UnrepresentableError {
	enc := c.enc.NewEncoder()
	for i, r := range text {
		if r == utf8.RuneError {
			continue
		}
		if _, err := enc.String(string(r)); err != nil {
			return &UnrepresentableError{Encoding: c.name, Rune: r, Offset: i}
		}
	}
	return nil
}
