// Package testutil builds synthetic SCEL files for tests.
package testutil

import (
	"encoding/binary"

	"golang.org/x/text/encoding/unicode"
)

// Magic is the SCEL header signature.
var Magic = []byte{0x40, 0x15, 0x00, 0x00, 0x44, 0x43, 0x53, 0x01, 0x01, 0x00, 0x00, 0x00}

const (
	// HeaderSize is the size of the fixed header region.
	HeaderSize = 0x1540

	wordCountOffset  = 0x124
	nameStart        = 0x130
	categoryStart    = 0x338
	descriptionStart = 0x540
	exampleStart     = 0xd40
)

// Syllable is one pinyin table record.
type Syllable struct {
	Index  uint16
	Pinyin string
}

// Group is one homophone group in the dictionary section.
type Group struct {
	Indices []uint16
	Words   []string
	// Ext is the extension payload written after each word, in code units.
	Ext []uint16
}

// File describes a synthetic SCEL file.
type File struct {
	Name        string
	Category    string
	Description string
	Example     string
	WordCount   uint32

	Syllables []Syllable
	// Unterminated omits the zero-index record that ends the pinyin table.
	Unterminated bool

	Groups []Group

	// Trailer is appended verbatim after the groups.
	Trailer []byte
}

// UTF16LE encodes s as UTF-16LE without a BOM.
func UTF16LE(s string) []byte {
	b, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		panic(err)
	}
	return b
}

// Header returns a valid header region carrying the metadata of f.
func Header(f *File) []byte {
	b := make([]byte, HeaderSize)
	copy(b, Magic)
	binary.LittleEndian.PutUint32(b[wordCountOffset:], f.WordCount)
	putString(b[nameStart:categoryStart], f.Name)
	putString(b[categoryStart:descriptionStart], f.Category)
	putString(b[descriptionStart:exampleStart], f.Description)
	putString(b[exampleStart:HeaderSize], f.Example)
	return b
}

// PinyinTable returns the encoded pinyin table of f, including the
// terminating record unless f.Unterminated is set.
func PinyinTable(f *File) []byte {
	var b []byte
	for _, s := range f.Syllables {
		text := UTF16LE(s.Pinyin)
		b = appendU16(b, s.Index)
		b = appendU16(b, uint16(len(text)/2))
		b = append(b, text...)
	}
	if !f.Unterminated {
		b = appendU16(b, 0)
		b = appendU16(b, 0)
	}
	return b
}

// GroupBytes encodes one homophone group.
func GroupBytes(g Group) []byte {
	var b []byte
	b = appendU16(b, uint16(len(g.Words)))
	b = appendU16(b, uint16(len(g.Indices)))
	for _, i := range g.Indices {
		b = appendU16(b, i)
	}
	for _, w := range g.Words {
		text := UTF16LE(w)
		b = appendU16(b, uint16(len(text)/2))
		b = append(b, text...)
		b = appendU16(b, uint16(len(g.Ext)))
		for _, e := range g.Ext {
			b = appendU16(b, e)
		}
	}
	return b
}

// MakeScel returns the complete encoded file.
func MakeScel(f *File) []byte {
	b := Header(f)
	b = append(b, PinyinTable(f)...)
	for _, g := range f.Groups {
		b = append(b, GroupBytes(g)...)
	}
	return append(b, f.Trailer...)
}

func putString(dst []byte, s string) {
	text := UTF16LE(s)
	if len(text) > len(dst)-2 {
		text = text[:len(dst)-2]
	}
	copy(dst, text)
}

func appendU16(b []byte, v uint16) []byte {
	return binary.LittleEndian.AppendUint16(b, v)
}
