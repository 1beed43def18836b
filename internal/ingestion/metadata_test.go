package ingestion

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_JSONMarshaling(t *testing.T) {
	metadata := &Metadata{
		Path:      "resumes/jane.txt",
		Timestamp: "2024-01-01T00:00:00Z",
		Hash:      "abcd1234",
		Bytes:     2048,
		Truncated: true,
	}

	jsonBytes, err := metadata.ToJSON()
	require.NoError(t, err)

	var unmarshaled Metadata
	err = json.Unmarshal(jsonBytes, &unmarshaled)
	require.NoError(t, err)
	assert.Equal(t, *metadata, unmarshaled)
}

func TestComputeHash(t *testing.T) {
	hash1 := computeHash([]byte("test content"))
	hash2 := computeHash([]byte("different content"))

	// Hash should be 64 hex characters (SHA256)
	assert.Len(t, hash1, 64)
	assert.NotEqual(t, hash1, hash2)
	assert.Equal(t, hash1, computeHash([]byte("test content")))
}

func TestNewMetadata(t *testing.T) {
	data := []byte("test content")

	metadata := NewMetadata("resume.txt", data, false)

	assert.Equal(t, "resume.txt", metadata.Path)
	assert.Equal(t, len(data), metadata.Bytes)
	assert.False(t, metadata.Truncated)
	assert.Equal(t, computeHash(data), metadata.Hash)

	_, err := time.Parse(time.RFC3339, metadata.Timestamp)
	assert.NoError(t, err)
}
