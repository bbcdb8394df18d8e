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

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
)

// ValidateHeader checks that data is long enough to hold the fixed header and
// starts with the SCEL magic signature. Every later stage relies on this.
func ValidateHeader(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: file is %d bytes, header needs %d", ErrFormatMismatch, len(data), HeaderSize)
	}
	if !bytes.Equal(data[:len(headerMagic)], headerMagic[:]) {
		return fmt.Errorf("%w: magic expected % x, got % x", ErrFormatMismatch, headerMagic[:], data[:len(headerMagic)])
	}
	return nil
}

// ParseInfo reads the header metadata from data. It only needs a valid
// header; the pinyin table and dictionary section are never touched.
func ParseInfo(data []byte) (*ScelInfo, error) {
	if err := ValidateHeader(data); err != nil {
		return nil, err
	}

	info := &ScelInfo{
		Name:        readUtf16String(data[nameStart:categoryStart]),
		Category:    readUtf16String(data[categoryStart:descriptionStart]),
		Description: readUtf16String(data[descriptionStart:exampleStart]),
		Example:     readUtf16String(data[exampleStart:exampleEnd]),
		WordCount:   binary.LittleEndian.Uint32(data[wordCountOffset:]),
	}
	log.Debugf("Header info parsed. Name: '%s', Category: '%s', WordCount: %d", info.Name, info.Category, info.WordCount)
	return info, nil
}

// ParsePinyinTable parses the pinyin index table that follows the header.
// Truncation is not an error: parsing stops and what was read is kept.
func ParsePinyinTable(data []byte) (PinyinTable, TableBounds, error) {
	if err := ValidateHeader(data); err != nil {
		return nil, TableBounds{}, err
	}
	t := parsePinyinTable(data)
	return t.table, TableBounds{Start: PinyinTableOffset, End: t.endOffset, Terminated: t.terminated}, nil
}

func parsePinyinTable(data []byte) *scelTable {
	t := &scelTable{
		table:     make(PinyinTable),
		endOffset: PinyinTableOffset,
	}

	r := &byteReader{data: data, pos: PinyinTableOffset}
	for r.remaining() >= 4 {
		start := r.pos
		index, _ := r.u16()
		length, _ := r.u16()
		text, ok := r.take(int(length) * 2)
		if !ok {
			log.Debugf("Pinyin table record at 0x%x overruns buffer (length %d), stopping", start, length)
			r.pos = start
			break
		}
		t.endOffset = r.pos
		if index == 0 {
			t.terminated = true
			break
		}
		if prev, dup := t.table[index]; dup {
			log.Debugf("Pinyin index %d repeated at 0x%x, replacing '%s'", index, start, prev)
		}
		t.table[index] = decodeLittleEndianUtf16(text)
	}

	log.Debugf("Pinyin table parsed: %d syllables, 0x%x-0x%x, terminated: %t", len(t.table), PinyinTableOffset, t.endOffset, t.terminated)
	return t
}

// Decode decodes every dictionary record in data. opts may be nil.
func Decode(data []byte, opts *DecodeOptions) ([]*Record, error) {
	return DecodeContext(context.Background(), data, opts)
}

// DecodeContext is like Decode but stops with ctx.Err() once ctx is done.
func DecodeContext(ctx context.Context, data []byte, opts *DecodeOptions) ([]*Record, error) {
	if opts == nil {
		opts = DefaultDecodeOptions
	}
	if err := ValidateHeader(data); err != nil {
		return nil, err
	}

	t := parsePinyinTable(data)
	bounds := TableBounds{Start: PinyinTableOffset, End: t.endOffset, Terminated: t.terminated}

	dictStart, err := opts.locator().Locate(data, bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to locate dictionary section: %w", err)
	}
	log.Debugf("Dictionary section starts at 0x%x (%d bytes)", dictStart, len(data)-dictStart)

	return decodeEntries(ctx, data[dictStart:], t.table, opts)
}

// decodeEntries walks the dictionary section one homophone group at a time.
// A malformed group moves the cursor one byte past its start and decoding
// resumes there.
func decodeEntries(ctx context.Context, section []byte, table PinyinTable, opts *DecodeOptions) ([]*Record, error) {
	limit := opts.maxEntries()
	records := make([]*Record, 0)
	var groups, resyncs int

	offset := 0
	for offset < len(section) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		group, n, step := decodeEntry(section[offset:], table, opts.AllHomophones)
		if step == stepContinue && len(records)+len(group) >= limit {
			group = group[:limit-len(records)]
			step = stepAbort
		}
		records = append(records, group...)

		switch step {
		case stepContinue:
			groups++
			offset += n
		case stepSkipAndRetry:
			resyncs++
			offset++
		case stepAbort:
			log.Infof("Entry cap of %d reached at section offset 0x%x, stopping", limit, offset)
			offset = len(section)
		}
	}

	if resyncs > 0 {
		log.Warningf("Dictionary section had %d malformed positions, %d groups decoded", resyncs, groups)
	}
	log.Infof("Decoded %d records from %d homophone groups", len(records), groups)
	return records, nil
}

// decodeEntry decodes one homophone group from the start of data. It returns
// the records, the number of bytes consumed and the step to take next.
func decodeEntry(data []byte, table PinyinTable, allHomophones bool) ([]*Record, int, decodeStep) {
	r := &byteReader{data: data}

	samePinyinCount, ok := r.u16()
	if !ok {
		return nil, 0, stepSkipAndRetry
	}
	pinyinLen, ok := r.u16()
	if !ok {
		return nil, 0, stepSkipAndRetry
	}
	// Each word record takes at least 4 bytes.
	if r.remaining() < 2*int(pinyinLen)+4*int(samePinyinCount) {
		return nil, 0, stepSkipAndRetry
	}

	syllables := make([]string, 0, pinyinLen)
	for i := 0; i < int(pinyinLen); i++ {
		index, ok := r.u16()
		if !ok {
			return nil, 0, stepSkipAndRetry
		}
		if py, found := table[index]; found {
			syllables = append(syllables, py)
		}
	}

	words := make([]string, 0, samePinyinCount)
	for i := 0; i < int(samePinyinCount); i++ {
		wordLen, ok := r.u16()
		if !ok {
			return nil, 0, stepSkipAndRetry
		}
		wordBytes, ok := r.take(int(wordLen) * 2)
		if !ok {
			return nil, 0, stepSkipAndRetry
		}
		extLen, ok := r.u16()
		if !ok {
			return nil, 0, stepSkipAndRetry
		}
		// Extension data is undocumented; skip it.
		if _, ok := r.take(int(extLen) * 2); !ok {
			return nil, 0, stepSkipAndRetry
		}
		words = append(words, decodeLittleEndianUtf16(wordBytes))
	}

	if len(words) == 0 {
		return nil, r.pos, stepContinue
	}
	if !allHomophones {
		words = words[:1]
	}

	records := make([]*Record, 0, len(words))
	for _, w := range words {
		rec := NewRecord(w)
		rec.SetCode(CodeTypePinyin, NewCodeFromSyllables(syllables))
		records = append(records, rec)
	}
	return records, r.pos, stepContinue
}
