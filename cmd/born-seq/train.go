package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/born-ml/born-seq/internal/nn"
	"github.com/born-ml/born-seq/internal/optim"
)

func newTrainCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "train [FILE]",
		Short: "Fit a sequence autoencoder on the lines of FILE or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return trainHandler(cmd, opts, args)
		},
	}
}

// trainHandler reconstructs the embedded input through a hidden layer. The
// embedding itself stays fixed; it is the target.
func trainHandler(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	lines, err := readLines(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	_, xs, _, err := s.encode(lines)
	if err != nil {
		return err
	}

	inner := nn.NewSequential[backend](
		s.layer(cfg.HiddenDim, cfg.EmbedDim),
		nn.NewLinear(cfg.EmbedDim, cfg.HiddenDim, s.backend).WithRand(s.rng),
	)
	model := nn.WithList2Padded[backend](inner, s.backend)

	optimizer, err := optim.New(cfg.Optimizer, model.Parameters(),
		optim.Config{LR: cfg.LR, Momentum: cfg.Momentum}, s.backend)
	if err != nil {
		return err
	}

	data := make([][]string, 0, cfg.Steps)
	for step := 1; step <= cfg.Steps; step++ {
		ys, backprop, err := model.Forward(xs, true)
		if err != nil {
			return err
		}
		loss, dYs, err := nn.SequenceMSE(ys, xs)
		if err != nil {
			return err
		}
		if _, err := backprop(dYs); err != nil {
			return err
		}
		optimizer.Step()
		optimizer.ZeroGrad()

		klog.V(1).Infof("step %d: loss %.6f", step, loss)
		data = append(data, []string{strconv.Itoa(step), strconv.FormatFloat(float64(loss), 'f', 6, 32)})
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"STEP", "LOSS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}
