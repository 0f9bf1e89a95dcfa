// Package main provides the bed2gtf command-line tool.
package main

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/genomekit/bed2gtf/internal/bed"
	"github.com/genomekit/bed2gtf/internal/convert"
	"github.com/genomekit/bed2gtf/internal/isoform"
	"github.com/genomekit/bed2gtf/internal/output"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		bedPath      string
		outputPath   string
		isoformsPath string
		noGene       bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:     "bed2gtf",
		Short:   "Convert BED12 gene models to GTF annotations",
		Long:    "Convert BED12 gene models to GTF annotation records, deriving per-exon reading frames, start/stop codon intervals and UTR/CDS boundaries.",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Example: `  bed2gtf -b input.bed -i isoforms.txt -o output.gtf
  bed2gtf -b input.bed.gz -i isoforms.txt -o output.gtf.gz
  bed2gtf -b input.bed --no-gene -o output.gtf`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Config-file values back any flag the user left untouched
			if !cmd.Flags().Changed("no-gene") {
				noGene = viper.GetBool("convert.no_gene")
			}
			if !cmd.Flags().Changed("verbose") {
				verbose = viper.GetBool("log.verbose")
			}
			if isoformsPath == "" && !noGene {
				return fmt.Errorf("--isoforms is required unless --no-gene is set")
			}
			return runConvert(convertOptions{
				bedPath:      bedPath,
				outputPath:   outputPath,
				isoformsPath: isoformsPath,
				noGene:       noGene,
				verbose:      verbose,
				compress:     viper.GetBool("output.compress") || strings.HasSuffix(outputPath, ".gz"),
			})
		},
	}

	cobra.OnInitialize(initConfig)

	cmd.Flags().StringVarP(&bedPath, "bed", "b", "", "Path to the input BED file (.bed or .bed.gz)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to the output GTF file (.gtf or .gtf.gz)")
	cmd.Flags().StringVarP(&isoformsPath, "isoforms", "i", "", "Path to the transcript-to-gene isoform map")
	cmd.Flags().BoolVar(&noGene, "no-gene", false, "Use transcript names as gene names instead of an isoform map")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	cobra.CheckErr(cmd.MarkFlagRequired("bed"))
	cobra.CheckErr(cmd.MarkFlagRequired("output"))

	cmd.AddCommand(newConfigCmd())

	return cmd
}

func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".bed2gtf")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("BED2GTF")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// convertOptions carries the resolved flag and config values for one run.
type convertOptions struct {
	bedPath      string
	outputPath   string
	isoformsPath string
	noGene       bool
	verbose      bool
	compress     bool
}

func runConvert(opts convertOptions) error {
	logger, err := newLogger(opts.verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	var isoforms *isoform.Map
	if !opts.noGene {
		isoforms, err = isoform.Load(opts.isoformsPath)
		if err != nil {
			return err
		}
		logger.Debug("isoform map loaded",
			zap.String("path", opts.isoformsPath),
			zap.Int("transcripts", isoforms.Len()))
	}

	parser, err := bed.NewParser(opts.bedPath)
	if err != nil {
		return err
	}
	defer parser.Close()

	file, err := os.Create(opts.outputPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	var out io.Writer = file
	var gz *gzip.Writer
	if opts.compress {
		gz = gzip.NewWriter(file)
		out = gz
	}

	w := output.NewWriter(out)
	if err := w.WriteComments(version); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	conv := convert.New(w, isoforms)
	conv.SetLogger(logger)

	if err := conv.Run(parser); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("close gzip stream: %w", err)
		}
	}

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
