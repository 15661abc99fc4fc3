package main

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Codec is one candidate source encoding. Decode succeeds only when every
// byte of the input maps to a character.
type Codec struct {
	Name   string
	decode func(raw []byte) (string, bool)
}

func (c Codec) Decode(raw []byte) (string, bool) { return c.decode(raw) }

// legacyCodec wraps an x/text encoding. Those decoders substitute U+FFFD
// for bytes they cannot map instead of failing, so any U+FFFD in the output
// marks the input as not being in this encoding.
func legacyCodec(name string, enc encoding.Encoding) Codec {
	return Codec{
		Name: name,
		decode: func(raw []byte) (string, bool) {
			out, err := enc.NewDecoder().Bytes(raw)
			if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
				return "", false
			}
			return string(out), true
		},
	}
}

func utf8Codec() Codec {
	return Codec{
		Name: "utf-8",
		decode: func(raw []byte) (string, bool) {
			if !utf8.Valid(raw) {
				return "", false
			}
			return string(raw), true
		},
	}
}

// Decoder tries its codecs in order and keeps the first that succeeds. The
// order is a priority heuristic: double-byte legacy encodings accept many
// byte sequences that were never written in them.
type Decoder struct {
	Codecs []Codec
}

// NewDecoder returns the fixed order: Simplified Chinese (cp936), then
// Japanese (cp932), then UTF-8.
func NewDecoder() *Decoder {
	return &Decoder{Codecs: []Codec{
		legacyCodec("cp936", simplifiedchinese.GBK),
		legacyCodec("cp932", japanese.ShiftJIS),
		utf8Codec(),
	}}
}

// Decode returns the text and the name of the codec that produced it, or
// ok == false when no codec accepts raw.
//
// Input that already starts with a UTF-8 byte order mark and is valid UTF-8
// is reported as utf-8 with the mark stripped, so converted files decode to
// the same text on every later run.
func (d *Decoder) Decode(raw []byte) (text, encName string, ok bool) {
	if rest, found := bytes.CutPrefix(raw, utf8BOM); found && utf8.Valid(rest) {
		return string(rest), "utf-8", true
	}
	for _, c := range d.Codecs {
		if text, ok := c.Decode(raw); ok {
			return text, c.Name, true
		}
	}
	return "", "", false
}

// DecodeBytes decodes raw with the default codec order.
func DecodeBytes(raw []byte) (string, string, bool) {
	return NewDecoder().Decode(raw)
}
