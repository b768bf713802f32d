package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadTikToken skips the test when the encoding files cannot be fetched.
func loadTikToken(t *testing.T, encoding string) *TikToken {
	t.Helper()
	if testing.Short() {
		t.Skip("tiktoken encodings are downloaded on first use")
	}
	tok, err := NewTikToken(encoding)
	if err != nil {
		t.Skipf("encoding %s unavailable: %v", encoding, err)
	}
	return tok
}

func TestTikToken_InvalidEncoding(t *testing.T) {
	tok, err := NewTikToken("invalid_encoding_xyz")
	assert.Error(t, err)
	assert.Nil(t, tok)

	_, err = New("invalid_encoding_xyz")
	assert.Error(t, err)
}

func TestTikToken_InvalidModel(t *testing.T) {
	tok, err := NewTikTokenForModel("invalid-model-xyz")
	assert.Error(t, err)
	assert.Nil(t, tok)
}

func TestTikToken_Roundtrip(t *testing.T) {
	tok := loadTikToken(t, "cl100k_base")
	assert.Equal(t, "cl100k_base", tok.Name())

	tests := []struct {
		name string
		text string
	}{
		{
			name: "simple text",
			text: "Hello, world!",
		},
		{
			name: "with newlines",
			text: "Hello\nWorld\n",
		},
		{
			name: "unicode",
			text: "Hello 世界! 🌍",
		},
		{
			name: "empty string",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := tok.Encode(tt.text)
			require.NoError(t, err)
			for _, id := range tokens {
				assert.Less(t, int(id), tok.VocabSize())
			}

			decoded, err := tok.Decode(tokens)
			require.NoError(t, err)
			assert.Equal(t, tt.text, decoded)
		})
	}

	_, err := tok.Decode([]int32{-1})
	assert.Error(t, err)
}

func TestTikToken_VocabSize(t *testing.T) {
	tests := []struct {
		encoding          string
		expectedVocabSize int
	}{
		{"cl100k_base", 100277},
		{"p50k_base", 50281},
		{"r50k_base", 50257},
	}

	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			tok := loadTikToken(t, tt.encoding)
			assert.Equal(t, tt.expectedVocabSize, tok.VocabSize())
		})
	}
}
