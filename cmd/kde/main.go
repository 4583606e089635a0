// kde reads samples from a file or stdin and prints their probability
// density, estimated by diffusion.
//
// Input has one observation per line. One column gives a
// one-dimensional estimate; two columns give a two-dimensional one.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aclements/go-kdediffusion/stats"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "kde: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "kde [file]",
		Short: "Estimate a probability density by diffusion",
		Long: `kde reads samples, one observation per line, from file or from
standard input and prints their kernel density estimate. The bandwidth is
selected from the data (Botev et al. 2010). One column of input yields a
one-dimensional estimate, two columns a two-dimensional one.

Flags may also be set in a YAML config file (--config) or through
KDE_* environment variables, for example KDE_POINTS=256.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			if cfg.Verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "config: %+v\n", cfg)
			}

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			return run(in, cmd.OutOrStdout(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "YAML config `file`")
	flags.IntP("points", "n", 0, "grid points per axis, rounded up to a power of two (default 1024 in 1-D, 256 in 2-D)")
	flags.Float64("limit", 0, "grid covers [-limit, limit] on every axis")
	flags.Float64("min", 0, "lower x limit (default inferred)")
	flags.Float64("max", 0, "upper x limit (default inferred)")
	flags.Float64("ymin", 0, "lower y limit (default inferred)")
	flags.Float64("ymax", 0, "upper y limit (default inferred)")
	flags.Float64("margin", 0, "fraction of the sample range added to inferred limits (default 0.1 in 1-D, 0.25 in 2-D)")
	flags.StringP("output", "o", "text", "output `format` (text, yaml)")
	flags.BoolP("verbose", "v", false, "print the configuration to stderr")
	return cmd
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	v.SetEnvPrefix("KDE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// config is the resolved command configuration.
type config struct {
	Points           int
	XLimits, YLimits stats.Limits
	Margin           float64
	Output           string
	Verbose          bool
}

func loadConfig(v *viper.Viper) (*config, error) {
	xl, err := limits(v, "min", "max")
	if err != nil {
		return nil, err
	}
	yl, err := limits(v, "ymin", "ymax")
	if err != nil {
		return nil, err
	}
	cfg := &config{
		Points:  v.GetInt("points"),
		XLimits: xl,
		YLimits: yl,
		Margin:  v.GetFloat64("margin"),
		Output:  v.GetString("output"),
		Verbose: v.GetBool("verbose"),
	}
	switch cfg.Output {
	case "text", "yaml":
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Output)
	}
	if cfg.Margin < 0 {
		return nil, fmt.Errorf("negative margin %v", cfg.Margin)
	}
	return cfg, nil
}

// limits returns the axis limits given by the keys lo and hi, falling
// back to the symmetric limit and then to inference. Unset bounds are
// inferred, so explicit limits must describe a non-empty range.
func limits(v *viper.Viper, lo, hi string) (stats.Limits, error) {
	l := stats.InferLimits()
	if v.IsSet("limit") {
		limit := v.GetFloat64("limit")
		if !(limit > 0) {
			return l, fmt.Errorf("limit %v is not positive", limit)
		}
		l = stats.SymmetricLimits(limit)
	}
	if v.IsSet(lo) {
		l.Min = v.GetFloat64(lo)
	}
	if v.IsSet(hi) {
		l.Max = v.GetFloat64(hi)
	}
	// stats.Limits reads [0, 0] as "infer".
	if l.Min == 0 && l.Max == 0 {
		return l, fmt.Errorf("%s and %s give the empty range [0, 0]", lo, hi)
	}
	return l, nil
}

func run(r io.Reader, w io.Writer, cfg *config) error {
	xs, ys, err := readInput(r)
	if err != nil {
		return err
	}
	if ys == nil {
		k := stats.DiffusionKDE{N: cfg.Points, Limits: cfg.XLimits, Margin: cfg.Margin}
		e, err := k.From(xs)
		if err != nil {
			return err
		}
		return writeEstimate(w, cfg.Output, len(xs), e)
	}
	k := stats.DiffusionKDE2D{N: cfg.Points, XLimits: cfg.XLimits, YLimits: cfg.YLimits, Margin: cfg.Margin}
	e, err := k.From(xs, ys)
	if err != nil {
		return err
	}
	return writeEstimate2D(w, cfg.Output, len(xs), e)
}
