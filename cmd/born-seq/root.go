package main

import (
	"flag"
	"fmt"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/born-ml/born-seq/internal/config"
)

// options are the flags shared by run and train.
type options struct {
	configPath string
	overrides  config.Overrides
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "born-seq",
		Short:         "Padded sequence layers over variable-length token sequences",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	klogFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(klogFlags)
	rootCmd.PersistentFlags().AddGoFlagSet(klogFlags)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML config file")
	flags.StringVar(&opts.overrides.Encoding, "encoding", "", `tokenizer: "bytes" or a tiktoken encoding`)
	flags.StringVar(&opts.overrides.Layer, "layer", "", "inner layer: rnn or linear")
	flags.StringVar(&opts.overrides.Optimizer, "optimizer", "", "optimizer: sgd or adam")
	flags.IntVar(&opts.overrides.EmbedDim, "embed-dim", 0, "embedding size")
	flags.IntVar(&opts.overrides.HiddenDim, "hidden-dim", 0, "inner layer output size")
	flags.IntVar(&opts.overrides.Steps, "steps", 0, "training steps")
	flags.Float32Var(&opts.overrides.LR, "lr", 0, "learning rate")
	flags.Float32Var(&opts.overrides.Momentum, "momentum", 0, "SGD momentum")
	flags.Int64Var(&opts.overrides.Seed, "seed", 0, "random seed")

	for _, cmd := range []*cobra.Command{
		newRunCmd(opts),
		newTrainCmd(opts),
		newVersionCmd(),
	} {
		rootCmd.AddCommand(cmd)
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "born-seq %s\n", version)
		},
	}
}

// load resolves the configuration: defaults, then the config file, then
// flags.
func (o *options) load() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}
	cfg.ApplyOverrides(o.overrides)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	klog.V(2).Infof("config: %+v", *cfg)
	return cfg, nil
}
