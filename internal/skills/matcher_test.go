package skills

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPattern(t *testing.T) {
	pattern := BuildPattern(sortByLengthDesc([]string{"go", "google cloud", "c++", ".net", "ci/cd"}))
	assert.Equal(t, `(?i)(?:\bgoogle cloud\b|\bci/cd\b|\.net\b|\bc\+\+|\bgo\b)`, pattern)
}

func TestBuildPattern_SkipsEmptyTerms(t *testing.T) {
	assert.Equal(t, `(?i)(?:\bsql\b)`, BuildPattern([]string{"", "sql", ""}))

	pattern := BuildPattern([]string{""})
	re, err := regexp.Compile(pattern)
	require.NoError(t, err)
	assert.False(t, re.MatchString(""))
	assert.False(t, re.MatchString("sql"))
}

func TestSortByLengthDesc(t *testing.T) {
	got := sortByLengthDesc([]string{"go", "sql", "", "aws", "go", "kubernetes"})
	assert.Equal(t, []string{"kubernetes", "aws", "sql", "go"}, got)
}

func TestMatchers(t *testing.T) {
	tests := []struct {
		name  string
		terms []string
		text  string
		want  []string
	}{
		{
			name:  "longest match wins",
			terms: []string{"go", "google cloud"},
			text:  "experience with google cloud",
			want:  []string{"google cloud"},
		},
		{
			name:  "no match inside a word",
			terms: []string{"go", "java"},
			text:  "golang and javascript",
			want:  nil,
		},
		{
			name:  "standalone word matches",
			terms: []string{"go", "java"},
			text:  "go, java; go",
			want:  []string{"go", "java", "go"},
		},
		{
			name:  "symbol suffixes",
			terms: []string{"c", "c++", "c#"},
			text:  "c++ and c# and c",
			want:  []string{"c++", "c#", "c"},
		},
		{
			name:  "leading dot",
			terms: []string{".net", "asp.net"},
			text:  "asp.net and .net core",
			want:  []string{"asp.net", ".net"},
		},
		{
			name:  "longer term fails its boundary, shorter one matches",
			terms: []string{"react", "react native"},
			text:  "react nativescript",
			want:  []string{"react"},
		},
		{
			name:  "no terms",
			terms: nil,
			text:  "python java go",
			want:  nil,
		},
	}

	for _, tt := range tests {
		for _, kind := range []MatcherKind{MatcherRegex, MatcherTrie} {
			t.Run(tt.name+"/"+string(kind), func(t *testing.T) {
				m, err := NewMatcher(kind, tt.terms)
				require.NoError(t, err)
				assert.Equal(t, tt.want, m.FindAll(tt.text))
			})
		}
	}
}

func TestNewMatcher_UnknownKind(t *testing.T) {
	_, err := NewMatcher("automaton", []string{"go"})
	var matcherErr *MatcherError
	assert.ErrorAs(t, err, &matcherErr)
}

func TestRegexMatcher_EmptyString(t *testing.T) {
	m, err := NewRegexMatcher(nil)
	require.NoError(t, err)
	assert.Equal(t, "", m.String())
}
