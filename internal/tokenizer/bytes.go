package tokenizer

import (
	"github.com/pkg/errors"
)

// BytesName is the registry name of the byte-level tokenizer.
const BytesName = "bytes"

// Bytes maps every UTF-8 byte of the input to its own token, so the
// vocabulary is exactly 256 ids and no data files are needed.
type Bytes struct{}

// NewBytes creates a byte-level tokenizer.
func NewBytes() *Bytes {
	return &Bytes{}
}

// Encode returns the bytes of text as token ids.
func (b *Bytes) Encode(text string) ([]int32, error) {
	ids := make([]int32, len(text))
	for i := 0; i < len(text); i++ {
		ids[i] = int32(text[i])
	}
	return ids, nil
}

// Decode reassembles the bytes. Ids outside [0, 256) are rejected.
func (b *Bytes) Decode(tokens []int32) (string, error) {
	buf := make([]byte, len(tokens))
	for i, tok := range tokens {
		if tok < 0 || tok > 255 {
			return "", errors.Errorf("token %d at position %d is not a byte", tok, i)
		}
		buf[i] = byte(tok)
	}
	return string(buf), nil
}

// VocabSize returns 256.
func (b *Bytes) VocabSize() int {
	return 256
}

// Name returns "bytes".
func (b *Bytes) Name() string {
	return BytesName
}
