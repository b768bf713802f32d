package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/born-ml/born-seq/internal/nn"
	"github.com/born-ml/born-seq/internal/tensor"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run [FILE]",
		Short: "Run one forward and backward pass over the lines of FILE or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHandler(cmd, opts, args)
		},
	}
}

func runHandler(cmd *cobra.Command, opts *options, args []string) error {
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
	ids, xs, embedBackprop, err := s.encode(lines)
	if err != nil {
		return err
	}

	model := nn.WithList2Padded(s.layer(cfg.HiddenDim, 0), s.backend)
	if err := model.Initialize(xs, nil); err != nil {
		return err
	}

	ys, backprop, err := model.Forward(xs, false)
	if err != nil {
		return err
	}

	dYs := make([]seq, len(ys))
	for i, y := range ys {
		dYs[i] = tensor.Ones[float32](y.Shape(), s.backend)
	}
	dXs, err := backprop(dYs)
	if err != nil {
		return err
	}
	if err := embedBackprop(dXs); err != nil {
		return err
	}
	klog.V(1).Infof("%s: %d sequences forward and backward", model.Name(), len(xs))

	data := make([][]string, len(lines))
	for i := range lines {
		data[i] = []string{
			strconv.Itoa(i),
			strconv.Itoa(len(ids[i])),
			fmt.Sprint(ys[i].Shape()),
			fmt.Sprint(dXs[i].Shape()),
		}
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"INDEX", "TOKENS", "OUTPUT", "INPUT GRAD"})
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
