package scel

import (
	"encoding/binary"
	"unicode/utf16"

	"golang.org/x/text/encoding/unicode"
)

var utf16leEncoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// decodeLittleEndianUtf16 decodes UTF-16LE bytes. Unpaired surrogates are
// replaced with U+FFFD. A trailing odd byte is dropped.
func decodeLittleEndianUtf16(data []byte) string {
	data = data[:len(data)&^1]
	out, err := utf16leEncoding.NewDecoder().Bytes(data)
	if err != nil {
		log.Debugf("x/text UTF-16LE decode failed (%d bytes), using fallback: %v", len(data), err)
		return string(utf16.Decode(utf16Units(data)))
	}
	return string(out)
}

// readUtf16String decodes a zero-terminated UTF-16LE string from data. It
// stops at the first zero code unit or at the end of data.
func readUtf16String(data []byte) string {
	end := len(data) &^ 1
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			end = i
			break
		}
	}
	return decodeLittleEndianUtf16(data[:end])
}

func utf16Units(data []byte) []uint16 {
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		units = append(units, binary.LittleEndian.Uint16(data[i:]))
	}
	return units
}

// byteReader is a bounds-checked little-endian cursor over a buffer. Reads
// past the end set ok to false and leave the cursor untouched.
type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) remaining() int {
	return len(r.data) - r.pos
}

func (r *byteReader) u16() (uint16, bool) {
	if r.remaining() < 2 {
		return 0, false
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, true
}

func (r *byteReader) take(n int) ([]byte, bool) {
	if n < 0 || r.remaining() < n {
		return nil, false
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, true
}
