package normalize

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-classifier/internal/nlp"
)

type failingAnalyzer struct{ err error }

func (f failingAnalyzer) Analyze(string) (*nlp.Doc, error) { return nil, f.err }

type panickingAnalyzer struct{}

func (panickingAnalyzer) Analyze(string) (*nlp.Doc, error) { panic("analyzer crashed") }

func TestClean_Golden(t *testing.T) {
	input, err := os.ReadFile(filepath.Join("testdata", "golden_input.txt"))
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join("testdata", "golden_output.txt"))
	require.NoError(t, err)

	cleaner := NewCleaner(nlp.NewEnglish(), nil)
	assert.Equal(t, strings.TrimRight(string(want), "\n"), cleaner.Clean(string(input)))
}

func TestClean_Deterministic(t *testing.T) {
	cleaner := NewCleaner(nlp.NewEnglish(), nil)
	text := "Built data pipelines in Python; deployed services to AWS and Azure."

	first := cleaner.Clean(text)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, cleaner.Clean(text))
}

func TestClean_NonASCIIOnly(t *testing.T) {
	cleaner := NewCleaner(nlp.NewEnglish(), nil)
	assert.Equal(t, "", cleaner.Clean("日本語のテキストだけ。履歴書。"))
}

func TestClean_AnalyzerError(t *testing.T) {
	var buf bytes.Buffer
	cleaner := NewCleaner(failingAnalyzer{err: errors.New("boom")}, log.New(&buf, "", 0))

	assert.Equal(t, "", cleaner.Clean("Senior engineer with lots of experience"))
	assert.Contains(t, buf.String(), "[ERROR] Cleaning error: boom")
}

func TestClean_AnalyzerPanic(t *testing.T) {
	var buf bytes.Buffer
	cleaner := NewCleaner(panickingAnalyzer{}, log.New(&buf, "", 0))

	assert.Equal(t, "", cleaner.Clean("Senior engineer with lots of experience"))
	assert.Contains(t, buf.String(), "analyzer crashed")
}

func TestClean_DropsShortLemmas(t *testing.T) {
	cleaner := NewCleaner(nlp.NewEnglish(), nil)
	assert.Equal(t, "sql c++ developer", cleaner.Clean("SQL, C#, C++ and R developer"))
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "contact details removed",
			input: "Email: a.b@c.io phone 1234567890 done",
			want:  "email phone done",
		},
		{
			name:  "skill symbols kept",
			input: "C#/C++, .NET!",
			want:  "c# c++, .net",
		},
		{
			name:  "digits blanked",
			input: "Worked 2019-2023 at ACME",
			want:  "worked at acme",
		},
		{
			name:  "ascii separators are whitespace",
			input: "a\x1cb\vc\fd",
			want:  "a b c d",
		},
		{
			name:  "non-ascii dropped without substitution",
			input: "Résumé naïve",
			want:  "rsum nave",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Prepare(tt.input))
		})
	}
}
