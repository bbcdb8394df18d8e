package scel

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// CodeType identifies the encoding scheme a Record's code is written in.
type CodeType int

const (
	CodeTypeUnknown CodeType = iota
	CodeTypePinyin
	CodeTypeWubi86
	CodeTypeWubi98
	CodeTypeWubiNewAge
	CodeTypeZhengma
	CodeTypeCangjie
	CodeTypeTerraPinyin
	CodeTypeZhuyin
	CodeTypeEnglish
	CodeTypeUserDefine
	CodeTypeUserDefinePhrase
	CodeTypeQingsongErbi
	CodeTypeChaoqiangErbi
	CodeTypeXiandaiErbi
	CodeTypeYong
	CodeTypeChaoyin
	CodeTypeInnerCode
	CodeTypeNoCode
)

var codeTypeNames = map[CodeType]string{
	CodeTypeUnknown:          "Unknown",
	CodeTypePinyin:           "Pinyin",
	CodeTypeWubi86:           "Wubi86",
	CodeTypeWubi98:           "Wubi98",
	CodeTypeWubiNewAge:       "WubiNewAge",
	CodeTypeZhengma:          "Zhengma",
	CodeTypeCangjie:          "Cangjie",
	CodeTypeTerraPinyin:      "TerraPinyin",
	CodeTypeZhuyin:           "Zhuyin",
	CodeTypeEnglish:          "English",
	CodeTypeUserDefine:       "UserDefine",
	CodeTypeUserDefinePhrase: "UserDefinePhrase",
	CodeTypeQingsongErbi:     "QingsongErbi",
	CodeTypeChaoqiangErbi:    "ChaoqiangErbi",
	CodeTypeXiandaiErbi:      "XiandaiErbi",
	CodeTypeYong:             "Yong",
	CodeTypeChaoyin:          "Chaoyin",
	CodeTypeInnerCode:        "InnerCode",
	CodeTypeNoCode:           "NoCode",
}

func (t CodeType) String() string {
	if name, ok := codeTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CodeType(%d)", int(t))
}

// ParseCodeType returns the CodeType with the given name, ignoring case.
func ParseCodeType(name string) (CodeType, error) {
	for t, n := range codeTypeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return CodeTypeUnknown, fmt.Errorf("unknown code type: (%s)", name)
}

// Code is the encoding of a word as an ordered list of positions, each
// holding its candidate codes. Per-character codes use one position per
// character; a code shared by the whole word uses a single position.
type Code [][]string

// NewCodeFromSyllables returns a code with one position per syllable and a
// single candidate at each position.
func NewCodeFromSyllables(syllables []string) Code {
	code := make(Code, 0, len(syllables))
	for _, s := range syllables {
		code = append(code, []string{s})
	}
	return code
}

// NewSingleCode returns a one-position code with a single candidate.
func NewSingleCode(code string) Code {
	return Code{{code}}
}

// NewMultiCode returns a one-position code with several candidates.
func NewMultiCode(codes []string) Code {
	return Code{append([]string(nil), codes...)}
}

// Len returns the number of positions.
func (c Code) Len() int {
	return len(c)
}

// IsEmpty reports whether the code has no positions or any position has no
// candidates.
func (c Code) IsEmpty() bool {
	if len(c) == 0 {
		return true
	}
	for _, alts := range c {
		if len(alts) == 0 {
			return true
		}
	}
	return false
}

// Default returns the first candidate of every position. Positions without
// candidates are skipped.
func (c Code) Default() []string {
	out := make([]string, 0, len(c))
	for _, alts := range c {
		if len(alts) > 0 {
			out = append(out, alts[0])
		}
	}
	return out
}

// Single returns the first candidate of the first position.
func (c Code) Single() (string, bool) {
	if len(c) == 0 || len(c[0]) == 0 {
		return "", false
	}
	return c[0][0], true
}

// Join joins the default selection with sep.
func (c Code) Join(sep string) string {
	return strings.Join(c.Default(), sep)
}

// Expand returns every combination of candidates across positions, each
// joined with sep, in position-major order. An empty code expands to nil.
func (c Code) Expand(sep string) []string {
	if c.IsEmpty() {
		return nil
	}
	result := []string{""}
	for i, alts := range c {
		next := make([]string, 0, len(result)*len(alts))
		for _, prefix := range result {
			for _, alt := range alts {
				if i > 0 {
					next = append(next, prefix+sep+alt)
				} else {
					next = append(next, alt)
				}
			}
		}
		result = next
	}
	return result
}

// Record is one dictionary entry in the format-independent representation
// shared by every importer, exporter and filter.
type Record struct {
	Word     string
	Rank     int32
	CodeType CodeType
	Code     Code
}

// NewRecord returns a record for word with rank 0 and no code.
func NewRecord(word string) *Record {
	return &Record{
		Word:     word,
		CodeType: CodeTypeUnknown,
	}
}

// SetCode sets the code and its kind.
func (r *Record) SetCode(kind CodeType, code Code) {
	r.CodeType = kind
	r.Code = code
}

// Len returns the number of characters in the word.
func (r *Record) Len() int {
	return utf8.RuneCountInString(r.Word)
}

// HasCode reports whether the record carries a usable code.
func (r *Record) HasCode() bool {
	return !r.Code.IsEmpty()
}

// PinyinString joins the default pinyin selection with sep. It returns an
// empty string for records that are not pinyin coded.
func (r *Record) PinyinString(sep string) string {
	if r.CodeType != CodeTypePinyin && r.CodeType != CodeTypeTerraPinyin {
		return ""
	}
	return r.Code.Join(sep)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s [%s] %v %d", r.Word, r.CodeType, r.Code.Default(), r.Rank)
}
