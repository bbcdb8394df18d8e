package scel

import "fmt"

// TableBounds describes where the pinyin table parser started and stopped.
type TableBounds struct {
	Start int
	End   int
	// Terminated is true when the table ended on its zero-index sentinel
	// rather than on truncation.
	Terminated bool
}

// SectionLocator finds the absolute offset of the first dictionary record.
// The section start is not stored in the file, so every implementation is
// a guess of some kind.
type SectionLocator interface {
	Locate(data []byte, bounds TableBounds) (int, error)
}

// DefaultLocator is the locator used when DecodeOptions.Locator is nil.
var DefaultLocator SectionLocator = CrossCheckLocator{}

// PatternLocator scans forward from the pinyin table offset for the first
// 4-byte window [0x00, 0x00, nonzero, 0x00] and treats it as the first
// record header. It ignores the table bounds entirely, and misfires when
// the pinyin text itself contains that byte pattern.
type PatternLocator struct{}

// Locate implements SectionLocator.
func (PatternLocator) Locate(data []byte, _ TableBounds) (int, error) {
	for i := PinyinTableOffset; i+4 <= len(data); i++ {
		if data[i] == 0 && data[i+1] == 0 && data[i+2] != 0 && data[i+3] == 0 {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no dictionary record pattern after offset 0x%x", ErrBinaryParse, PinyinTableOffset)
}

// TableEndLocator places the dictionary section right after the last byte
// the pinyin table parser consumed.
type TableEndLocator struct{}

// Locate implements SectionLocator.
func (TableEndLocator) Locate(data []byte, bounds TableBounds) (int, error) {
	if bounds.End < PinyinTableOffset || bounds.End >= len(data) {
		return 0, fmt.Errorf("%w: pinyin table ends at 0x%x, buffer is 0x%x bytes", ErrBinaryParse, bounds.End, len(data))
	}
	return bounds.End, nil
}

// CrossCheckLocator runs PatternLocator and checks its answer against the
// table bounds. The table end wins when the pattern is not found, or when
// the pattern lands inside a table that ended on its sentinel.
type CrossCheckLocator struct{}

// Locate implements SectionLocator.
func (CrossCheckLocator) Locate(data []byte, bounds TableBounds) (int, error) {
	offset, err := PatternLocator{}.Locate(data, bounds)
	if err != nil {
		log.Warningf("Section pattern not found, falling back to pinyin table end 0x%x: %v", bounds.End, err)
		return TableEndLocator{}.Locate(data, bounds)
	}

	if bounds.Terminated && offset < bounds.End {
		log.Warningf("Section pattern at 0x%x lies inside the pinyin table (0x%x-0x%x), using table end", offset, bounds.Start, bounds.End)
		return TableEndLocator{}.Locate(data, bounds)
	}

	if offset != bounds.End {
		log.Debugf("Section pattern at 0x%x disagrees with pinyin table end 0x%x, keeping pattern", offset, bounds.End)
	}
	return offset, nil
}
