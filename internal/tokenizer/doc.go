// Package tokenizer turns text into the token id sequences born-seq feeds to
// its embedding layer.
//
// Two tokenizers are available:
//   - tiktoken: OpenAI BPE encodings (cl100k_base, p50k_base, r50k_base)
//   - bytes: one token per UTF-8 byte, usable offline
//
// Example usage:
//
//	tok, err := tokenizer.New("bytes")
//	if err != nil {
//	    return err
//	}
//	ids, err := tok.Encode("Hello, world!")
package tokenizer
