// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tokenizer provides the public text tokenizers of born-seq.
//
// Supported tokenizers:
//   - TikToken: OpenAI BPE encodings (cl100k_base, p50k_base, r50k_base)
//   - Bytes: one token per UTF-8 byte, no data files needed
//
// Example usage:
//
//	tok, err := tokenizer.New("bytes")
//	if err != nil {
//	    return err
//	}
//	ids, err := tok.Encode("Hello, world!")
package tokenizer

import (
	"github.com/born-ml/born-seq/internal/tokenizer"
)

// Tokenizer converts text to token ids and back.
type Tokenizer = tokenizer.Tokenizer

// TikToken wraps pkoukk/tiktoken-go.
type TikToken = tokenizer.TikToken

// Bytes is the byte-level tokenizer.
type Bytes = tokenizer.Bytes

// BytesName is the registry name of the byte-level tokenizer.
const BytesName = tokenizer.BytesName

// New returns the tokenizer registered under name: "bytes" or a tiktoken
// encoding name.
func New(name string) (Tokenizer, error) {
	return tokenizer.New(name)
}

// NewTikToken creates a tokenizer for a tiktoken encoding.
func NewTikToken(encodingName string) (*TikToken, error) {
	return tokenizer.NewTikToken(encodingName)
}

// NewTikTokenForModel creates a tiktoken tokenizer for an OpenAI model name.
func NewTikTokenForModel(modelName string) (*TikToken, error) {
	return tokenizer.NewTikTokenForModel(modelName)
}

// NewBytes creates a byte-level tokenizer.
func NewBytes() *Bytes {
	return tokenizer.NewBytes()
}
