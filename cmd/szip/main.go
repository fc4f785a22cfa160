// Command szip compresses and decompresses files using the Snappy frame
// format, grounded on original_source/szip/src/main.rs and built on
// spf13/cobra + spf13/pflag the way moby-moby builds its own command
// tree.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gosnappy/snap/internal/config"
	"github.com/gosnappy/snap/internal/szip"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		opts       szip.Options
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "szip [flags] [file...]",
		Short: "Compress or decompress files with Snappy",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			} else {
				log.SetLevel(logrus.WarnLevel)
			}

			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			defaults, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("szip: loading config %q: %w", path, err)
			}
			if !cmd.Flags().Changed("force") {
				opts.Force = defaults.Force
			}
			if !cmd.Flags().Changed("keep") {
				opts.Keep = defaults.Keep
			}
			if !cmd.Flags().Changed("raw") {
				opts.Raw = defaults.Raw
			}

			log.WithFields(logrus.Fields{
				"decompress": opts.Decompress,
				"raw":        opts.Raw,
				"files":      len(args),
			}).Debug("starting szip run")

			return szip.Run(args, opts, log.Warnf)
		},
	}

	var flags *pflag.FlagSet = cmd.Flags()
	flags.BoolVarP(&opts.Decompress, "decompress", "d", false, "decompress rather than compress")
	flags.BoolVarP(&opts.Force, "force", "f", false, "overwrite existing output files")
	flags.BoolVarP(&opts.Keep, "keep", "k", false, "keep (don't remove) input files")
	flags.BoolVarP(&opts.Raw, "raw", "r", false, "use the raw block format instead of the frame format")
	flags.BoolVarP(&opts.Stdout, "stdout", "s", false, "write to stdout, leave input files untouched")
	flags.StringVar(&configPath, "config", "", "path to a TOML defaults file (default ~/.config/szip/config.toml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	return cmd
}
