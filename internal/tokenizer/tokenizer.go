package tokenizer

import (
	"github.com/pkg/errors"
)

// Tokenizer is the core interface for text tokenization.
type Tokenizer interface {
	// Encode converts text to token IDs.
	Encode(text string) ([]int32, error)

	// Decode converts token IDs back to text.
	Decode(tokens []int32) (string, error)

	// VocabSize returns the total vocabulary size. Every id returned by
	// Encode is below it.
	VocabSize() int

	// Name identifies the tokenizer.
	Name() string
}

// New returns the tokenizer registered under name: "bytes" or a tiktoken
// encoding name.
func New(name string) (Tokenizer, error) {
	switch name {
	case "":
		return nil, errors.New("tokenizer name is empty")
	case BytesName:
		return NewBytes(), nil
	default:
		return NewTikToken(name)
	}
}
