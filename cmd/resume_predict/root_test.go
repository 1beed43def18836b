package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-classifier/internal/types"
)

func TestPredict_MissingArgument(t *testing.T) {
	code, stdout, _ := runCLI(t)
	assert.Equal(t, 1, code)
	assert.JSONEq(t, `{"error":"Requires file path argument"}`, stdout)
}

func TestPredict_TooManyArguments(t *testing.T) {
	code, stdout, _ := runCLI(t, "a.txt", "b.txt")
	assert.Equal(t, 1, code)
	assert.JSONEq(t, `{"error":"Requires file path argument"}`, stdout)
}

func TestPredict_FileNotFound(t *testing.T) {
	code, stdout, _ := runCLI(t, filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, 1, code)
	assert.JSONEq(t, `{"error":"File not found"}`, stdout)
}

func TestPredict_Success(t *testing.T) {
	path := writeResume(t, "resume.txt", sampleResume)

	code, stdout, stderr := runCLI(t, path)
	require.Equal(t, 0, code, stderr)

	var result types.ResumeResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.False(t, result.Failed())
	assert.Equal(t, "Software Engineer", result.Category)
	assert.Equal(t, []string{"docker", "java", "kubernetes", "microservices"}, result.Skills)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &raw))
	assert.Contains(t, raw, "result_category")
	assert.Nil(t, raw["error"])
}

func TestPredict_ShortDocumentIsFailureResult(t *testing.T) {
	path := writeResume(t, "short.txt", "Java developer")

	code, stdout, _ := runCLI(t, path)
	assert.Equal(t, 0, code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &raw))
	assert.Len(t, raw, 1)
	assert.NotEmpty(t, raw["error"])
}

func TestPredict_HTMLResume(t *testing.T) {
	path := writeResume(t, "resume.html",
		"<html><head><style>p{}</style></head><body><p>"+sampleResume+"</p></body></html>")

	code, stdout, stderr := runCLI(t, path)
	require.Equal(t, 0, code, stderr)

	var result types.ResumeResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "Software Engineer", result.Category)
}

func TestPredict_VerbosePrintsToStderr(t *testing.T) {
	path := writeResume(t, "resume.txt", sampleResume)

	code, stdout, stderr := runCLI(t, path, "--verbose")
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "PREDICTION")
	assert.NotContains(t, stdout, "PREDICTION")
}

func TestPredict_MissingModelExitsWithError(t *testing.T) {
	path := writeResume(t, "resume.txt", sampleResume)

	code, stdout, stderr := runCLI(t, path, "--model", filepath.Join(t.TempDir(), "none.json"))
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error:")
}

func TestPredict_InvalidMatcher(t *testing.T) {
	path := writeResume(t, "resume.txt", sampleResume)

	code, _, stderr := runCLI(t, path, "--matcher", "fuzzy")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "config error")
}

func TestPredict_RecordsHistory(t *testing.T) {
	path := writeResume(t, "resume.txt", sampleResume)
	dbPath := filepath.Join(t.TempDir(), "history.db")

	code, _, stderr := runCLI(t, path, "--database-url", dbPath)
	require.Equal(t, 0, code, stderr)

	code, stdout, stderr := runCLI(t, "history", "--json", "--database-url", dbPath)
	require.Equal(t, 0, code, stderr)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Software Engineer", rows[0]["category"])
}
