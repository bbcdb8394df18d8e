//
// Copyright (C) 2023 Quan Chen <chenquan_act@163.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package scel

import "errors"

const (
	// HeaderSize is the size of the fixed header region. Every file must be at
	// least this long before any offset in it is trusted.
	HeaderSize = 0x1540

	// PinyinTableOffset is where the pinyin index table starts, immediately
	// after the header.
	PinyinTableOffset = HeaderSize

	// DefaultMaxEntries bounds the number of records a single decode may
	// produce. It is a guard against corrupt input, not a format limit.
	DefaultMaxEntries = 100000

	wordCountOffset = 0x124

	nameStart        = 0x130
	categoryStart    = 0x338
	descriptionStart = 0x540
	exampleStart     = 0xd40
	exampleEnd       = HeaderSize
)

// headerMagic is the 12-byte signature at offset 0 of every supported file.
var headerMagic = [12]byte{0x40, 0x15, 0x00, 0x00, 0x44, 0x43, 0x53, 0x01, 0x01, 0x00, 0x00, 0x00}

var (
	// ErrFormatMismatch is returned when the buffer is not a SCEL file: it is
	// shorter than the header or the magic signature does not match.
	ErrFormatMismatch = errors.New("scel format mismatch")

	// ErrBinaryParse is returned for structural damage that the local
	// recovery policies cannot absorb, such as a missing dictionary section.
	ErrBinaryParse = errors.New("scel binary parse error")
)

// ScelInfo is the descriptive metadata stored in the header. It has no
// effect on entry decoding.
type ScelInfo struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Example     string `json:"example"`
	WordCount   uint32 `json:"word_count"`
}

// PinyinTable maps a pinyin index to its syllable. A table belongs to one
// decode call; two files may use the same index for different syllables.
type PinyinTable map[uint16]string

// DecodeOptions configures entry decoding.
type DecodeOptions struct {
	// MaxEntries caps the number of records produced. Zero or negative
	// means DefaultMaxEntries.
	MaxEntries int

	// AllHomophones emits one record per word variant in a homophone group
	// instead of only the first one.
	AllHomophones bool

	// Locator finds the start of the dictionary section. Nil means
	// DefaultLocator.
	Locator SectionLocator
}

// DefaultDecodeOptions are the options used when nil is passed.
var DefaultDecodeOptions = &DecodeOptions{
	MaxEntries: DefaultMaxEntries,
}

func (o *DecodeOptions) maxEntries() int {
	if o == nil || o.MaxEntries <= 0 {
		return DefaultMaxEntries
	}
	return o.MaxEntries
}

func (o *DecodeOptions) locator() SectionLocator {
	if o == nil || o.Locator == nil {
		return DefaultLocator
	}
	return o.Locator
}

/********************************
 *    private data type          *
 ********************************/

// scelTable is the parsed pinyin table together with the cursor where the
// parser stopped.
type scelTable struct {
	table     PinyinTable
	endOffset int
	// terminated is true when the table ended on a zero-index record rather
	// than on truncation.
	terminated bool
}

// decodeStep is the outcome of decoding one homophone group.
type decodeStep int

const (
	// stepContinue means the group decoded and the cursor advances past it.
	stepContinue decodeStep = iota
	// stepSkipAndRetry means the group was malformed; advance one byte.
	stepSkipAndRetry
	// stepAbort stops decoding.
	stepAbort
)

func (s decodeStep) String() string {
	switch s {
	case stepContinue:
		return "continue"
	case stepSkipAndRetry:
		return "skip-and-retry"
	case stepAbort:
		return "abort"
	}
	return "unknown"
}
