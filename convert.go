package scel

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Importer reads a word list file into records.
type Importer interface {
	Import(ctx context.Context, path string) ([]*Record, error)
}

// Exporter writes records in some IME word list format.
type Exporter interface {
	Export(w io.Writer, records []*Record) error
	// CodeType is the code kind the format expects.
	CodeType() CodeType
}

// Filter decides whether a record is kept.
type Filter interface {
	Keep(r *Record) bool
}

// ScelImport imports SCEL cell dictionaries.
type ScelImport struct {
	Options *DecodeOptions
}

// Import implements Importer.
func (i *ScelImport) Import(ctx context.Context, path string) ([]*Record, error) {
	return ReadRecordsContext(ctx, path, i.Options)
}

// LengthFilter keeps records whose word length in characters is within
// [Min, Max]. A zero Max means no upper bound.
type LengthFilter struct {
	Min int
	Max int
}

// Keep implements Filter.
func (f LengthFilter) Keep(r *Record) bool {
	n := r.Len()
	return n >= f.Min && (f.Max <= 0 || n <= f.Max)
}

// RankFilter keeps records whose rank is within [Min, Max].
type RankFilter struct {
	Min int32
	Max int32
}

// Keep implements Filter.
func (f RankFilter) Keep(r *Record) bool {
	return r.Rank >= f.Min && r.Rank <= f.Max
}

// ApplyFilters returns the records every filter keeps, in their original order.
func ApplyFilters(records []*Record, filters ...Filter) []*Record {
	out := make([]*Record, 0, len(records))
next:
	for _, r := range records {
		for _, f := range filters {
			if !f.Keep(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}

// RimeExporter writes the Rime dictionary format: word, code and rank
// separated by tabs, one record per line.
type RimeExporter struct {
	// Kind is the code kind written. Pinyin codes are joined with a space;
	// other kinds use their single code.
	Kind CodeType
	// LineEnding defaults to "\n".
	LineEnding string
}

// NewRimeExporter returns a pinyin Rime exporter with Unix line endings.
func NewRimeExporter() *RimeExporter {
	return &RimeExporter{Kind: CodeTypePinyin, LineEnding: "\n"}
}

// CodeType implements Exporter.
func (e *RimeExporter) CodeType() CodeType {
	return e.Kind
}

// Line formats a single record. It returns false for records that have no
// code to write.
func (e *RimeExporter) Line(r *Record) (string, bool) {
	var code string
	if e.Kind == CodeTypePinyin {
		code = r.PinyinString(" ")
	} else if c, ok := r.Code.Single(); ok {
		code = c
	}
	if code == "" {
		return "", false
	}
	return fmt.Sprintf("%s\t%s\t%d", r.Word, code, r.Rank), true
}

// Export implements Exporter.
func (e *RimeExporter) Export(w io.Writer, records []*Record) error {
	eol := e.LineEnding
	if eol == "" {
		eol = "\n"
	}

	bw := bufio.NewWriter(w)
	var skipped int
	for _, r := range records {
		line, ok := e.Line(r)
		if !ok {
			skipped++
			continue
		}
		if _, err := bw.WriteString(line + eol); err != nil {
			return fmt.Errorf("failed to write rime line: %w", err)
		}
	}
	if skipped > 0 {
		log.Debugf("Rime export skipped %d records without code", skipped)
	}
	return bw.Flush()
}
