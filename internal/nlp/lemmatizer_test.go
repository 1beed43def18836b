package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLemmatizer_Lemmatize(t *testing.T) {
	l := NewLemmatizer()

	tests := []struct {
		in   string
		want string
	}{
		{"databases", "database"},
		{"companies", "company"},
		{"classes", "class"},
		{"boxes", "box"},
		{"matches", "match"},
		{"status", "status"},
		{"analysis", "analysis"},
		{"developed", "develop"},
		{"led", "lead"},
		{"was", "be"},
		{"aws", "aws"},
		{"c++", "c++"},
		{"node.js", "node.js"},
		{"python", "python"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, l.Lemmatize(tt.in))
		})
	}
}
