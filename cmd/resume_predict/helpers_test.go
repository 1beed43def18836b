package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleResume = "Jane Roe\nSoftware Engineer building Java microservices with Docker and Kubernetes.\n" +
	"Mentored engineers and shipped software to production."

// runCLI executes the CLI against the bundled assets with a temp log file.
func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")

	dir := t.TempDir()
	base := []string{
		"--skills", filepath.Join("..", "..", "predict", "skills.json"),
		"--model", filepath.Join("..", "..", "predict", "model_artifacts.json"),
		"--log-file", filepath.Join(dir, "predict.log"),
	}

	var out, errOut bytes.Buffer
	code = execute(append(args, base...), &out, &errOut)
	return code, out.String(), errOut.String()
}

// writeResume writes content to a temp file and returns its path.
func writeResume(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
