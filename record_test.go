package scel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_Expand(t *testing.T) {
	code := Code{{"ni", "nv"}, {"hao"}}
	assert.Equal(t, []string{"ni'hao", "nv'hao"}, code.Expand("'"))

	code = Code{{"a", "b"}, {"c", "d"}}
	assert.Equal(t, []string{"ac", "ad", "bc", "bd"}, code.Expand(""))

	assert.Nil(t, Code{}.Expand(" "))
	assert.Nil(t, Code{{"a"}, {}}.Expand(" "))
}

func TestCode_IsEmpty(t *testing.T) {
	tests := []struct {
		name  string
		code  Code
		empty bool
	}{
		{name: "nil", code: nil, empty: true},
		{name: "no positions", code: Code{}, empty: true},
		{name: "one empty position", code: Code{{"ni"}, {}}, empty: true},
		{name: "single", code: NewSingleCode("wqvb"), empty: false},
		{name: "syllables", code: NewCodeFromSyllables([]string{"ni", "hao"}), empty: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.empty, test.code.IsEmpty())
		})
	}
}

func TestCode_Default(t *testing.T) {
	code := Code{{"zhong", "chong"}, {}, {"guo"}}
	assert.Equal(t, []string{"zhong", "guo"}, code.Default())
	assert.Equal(t, "zhong guo", code.Join(" "))
	assert.Equal(t, 3, code.Len())

	s, ok := code.Single()
	assert.True(t, ok)
	assert.Equal(t, "zhong", s)

	_, ok = Code{{}}.Single()
	assert.False(t, ok)

	multi := NewMultiCode([]string{"wq", "wqv"})
	assert.Equal(t, 1, multi.Len())
	assert.Equal(t, []string{"wq", "wqv"}, multi.Expand(""))
}

func TestRecord(t *testing.T) {
	r := NewRecord("你好")
	assert.Equal(t, int32(0), r.Rank)
	assert.Equal(t, 2, r.Len())
	assert.False(t, r.HasCode())
	assert.Equal(t, "", r.PinyinString("'"))

	r.Rank = 1000
	r.SetCode(CodeTypePinyin, NewCodeFromSyllables([]string{"ni", "hao"}))
	assert.True(t, r.HasCode())
	assert.Equal(t, "ni'hao", r.PinyinString("'"))
	assert.Equal(t, "你好 [Pinyin] [ni hao] 1000", r.String())

	r.SetCode(CodeTypeWubi86, NewSingleCode("wqvb"))
	assert.Equal(t, "", r.PinyinString("'"))
}

func TestParseCodeType(t *testing.T) {
	for kind := CodeTypeUnknown; kind <= CodeTypeNoCode; kind++ {
		parsed, err := ParseCodeType(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	parsed, err := ParseCodeType("pinyin")
	require.NoError(t, err)
	assert.Equal(t, CodeTypePinyin, parsed)

	_, err = ParseCodeType("klingon")
	assert.Error(t, err)
	assert.Equal(t, "CodeType(99)", CodeType(99).String())
}
