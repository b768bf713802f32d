package main

import (
	"bufio"
	"io"
	"math/rand"
	"os"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/born-seq/internal/backend/cpu"
	"github.com/born-ml/born-seq/internal/config"
	"github.com/born-ml/born-seq/internal/nn"
	"github.com/born-ml/born-seq/internal/tokenizer"
)

type (
	backend = *cpu.CPUBackend
	seq     = nn.Seq[backend]
)

// readLines reads the file named in args, or in when there is none. Every
// line, empty ones included, becomes one sequence.
func readLines(args []string, in io.Reader) ([]string, error) {
	if len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "open input")
		}
		defer f.Close()
		in = f
	}

	var lines []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read input")
	}
	if len(lines) == 0 {
		return nil, errors.New("no input lines")
	}
	return lines, nil
}

// session is everything a command needs to push text through a model.
type session struct {
	cfg     *config.Config
	backend backend
	rng     *rand.Rand
	tok     tokenizer.Tokenizer
	embed   *nn.Embedding[backend]
}

func newSession(cfg *config.Config) (*session, error) {
	tok, err := tokenizer.New(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	b := cpu.New()
	//nolint:gosec // G404: reproducible model initialization, not security sensitive
	rng := rand.New(rand.NewSource(cfg.Seed))
	return &session{
		cfg:     cfg,
		backend: b,
		rng:     rng,
		tok:     tok,
		embed:   nn.NewEmbeddingWithRand(tok.VocabSize(), cfg.EmbedDim, rng, b),
	}, nil
}

// encode tokenizes and embeds every line.
func (s *session) encode(lines []string) ([][]int32, []seq, func([]seq) error, error) {
	ids := make([][]int32, len(lines))
	for i, line := range lines {
		var err error
		if ids[i], err = s.tok.Encode(line); err != nil {
			return nil, nil, nil, errors.Wrapf(err, "encode line %d", i+1)
		}
		if len(ids[i]) == 0 {
			klog.Warningf("line %d is empty, using a zero-length sequence", i+1)
		}
	}

	xs, backprop, err := s.embed.Forward(ids)
	if err != nil {
		return nil, nil, nil, err
	}
	klog.V(1).Infof("embedded %d sequences with %s (vocab %d)", len(xs), s.tok.Name(), s.tok.VocabSize())
	return ids, xs, backprop, nil
}

// layer builds the configured padded layer mapping nI features to nO.
func (s *session) layer(nO, nI int) nn.PaddedLayer[backend] {
	if s.cfg.Layer == "linear" {
		return nn.NewLinear(nO, nI, s.backend).WithRand(s.rng)
	}
	return nn.NewRNN(nO, nI, s.backend).WithRand(s.rng)
}
