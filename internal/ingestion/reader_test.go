package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadBounded(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		max           int
		want          string
		wantTruncated bool
	}{
		{name: "shorter than cap", input: "hello", max: 10, want: "hello"},
		{name: "exactly the cap", input: "hello", max: 5, want: "hello"},
		{name: "longer than cap", input: "hello world", max: 5, want: "hello", wantTruncated: true},
		{name: "no cap", input: "hello world", max: 0, want: "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, truncated, err := ReadBounded(strings.NewReader(tt.input), tt.max)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
			assert.Equal(t, tt.wantTruncated, truncated)
		})
	}
}

func TestReadFile_Truncates(t *testing.T) {
	path := writeFile(t, "resume.txt", strings.Repeat("a", 3000))

	doc, err := ReadFile(path, DefaultMaxReadBytes)
	require.NoError(t, err)

	assert.Len(t, doc.Text, DefaultMaxReadBytes)
	assert.Equal(t, FormatText, doc.Format)
	assert.True(t, doc.Metadata.Truncated)
	assert.Equal(t, DefaultMaxReadBytes, doc.Metadata.Bytes)
}

func TestReadFile_DropsSplitRune(t *testing.T) {
	path := writeFile(t, "resume.txt", "abcé")

	doc, err := ReadFile(path, 4)
	require.NoError(t, err)
	assert.Equal(t, "abc", doc.Text)
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"), DefaultMaxReadBytes)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Contains(t, fileErr.Error(), "file not found")
}

func TestReadFile_Directory(t *testing.T) {
	_, err := ReadFile(t.TempDir(), DefaultMaxReadBytes)

	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestReadFile_HTML(t *testing.T) {
	path := writeFile(t, "resume.html", `<html><head><title>CV</title><style>p{}</style></head>
<body><h1>Jane Doe</h1><p>Python and <b>Go</b> developer</p><script>var x = 1;</script></body></html>`)

	doc, err := ReadFile(path, DefaultMaxReadBytes)
	require.NoError(t, err)

	assert.Equal(t, FormatHTML, doc.Format)
	assert.Equal(t, "Jane Doe\nPython and Go developer", doc.Text)
}

func TestReadFile_HTMLCapAppliesToExtractedText(t *testing.T) {
	style := "<style>" + strings.Repeat(".c{color:red}", 300) + "</style>"
	body := strings.Repeat("Python developer. ", 20)
	path := writeFile(t, "resume.html", "<html><head>"+style+"</head><body><p>"+body+"</p></body></html>")

	doc, err := ReadFile(path, 100)
	require.NoError(t, err)

	assert.True(t, doc.Metadata.Truncated)
	assert.LessOrEqual(t, len(doc.Text), 100)
	assert.True(t, strings.HasPrefix(doc.Text, "Python developer."))
}

func TestReadFile_HTMLUnderCapNotTruncated(t *testing.T) {
	style := "<style>" + strings.Repeat(".c{color:red}", 300) + "</style>"
	path := writeFile(t, "resume.html", "<html><head>"+style+"</head><body><p>Go developer</p></body></html>")

	doc, err := ReadFile(path, DefaultMaxReadBytes)
	require.NoError(t, err)

	assert.False(t, doc.Metadata.Truncated)
	assert.Equal(t, "Go developer", doc.Text)
}

func TestReadLimit(t *testing.T) {
	assert.Equal(t, 2048, ReadLimit(FormatText, 2048))
	assert.Equal(t, MaxHTMLBytes, ReadLimit(FormatHTML, 2048))
	assert.Equal(t, 4*MaxHTMLBytes, ReadLimit(FormatHTML, 4*MaxHTMLBytes))
	assert.Equal(t, 0, ReadLimit(FormatHTML, 0))
}

func TestCapText_KeepsRunesWhole(t *testing.T) {
	got, cut := capText("añb", 2)
	assert.True(t, cut)
	assert.Equal(t, "a", got)

	got, cut = capText("abc", 5)
	assert.False(t, cut)
	assert.Equal(t, "abc", got)
}
