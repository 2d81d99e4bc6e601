// Command opexpr evaluates expressions with one of the opexpr calculators.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zephyrtronium/opexpr/internal/config"
	"github.com/zephyrtronium/opexpr/internal/session"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "opexpr [flags] [expression...]",
		Short:         "Evaluate expressions",
		Long:          "Evaluate each argument as an expression. With no arguments, evaluate each non-blank line of the input.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	root.PersistentFlags().String("calc", "", "calculator: bool, float, int, or big (env OPEXPR_CALC)")
	root.PersistentFlags().Uint("prec", 0, "precision in bits of the big calculator (env OPEXPR_PREC)")
	root.PersistentFlags().StringArray("given", nil, "name=value constant definition (any number of times)")
	root.PersistentFlags().String("constants", "", "YAML file of constants (env OPEXPR_CONSTANTS)")
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn, or error (env OPEXPR_LOG_LEVEL)")
	root.Flags().String("in", "", "input file, - for stdin (default stdin if no expressions are given)")
	root.Flags().String("fmt", "", "result formatting verb for numeric calculators")
	root.Flags().Bool("echo", false, "print parse trees")

	root.AddCommand(&cobra.Command{
		Use:   "ops",
		Short: "List the operators of a calculator",
		Args:  cobra.NoArgs,
		RunE:  ops,
	})
	return root
}

// setup loads configuration, applies flag overrides, and creates the session
// with its constants.
func setup(cmd *cobra.Command, format string) (session.Session, *zap.Logger, error) {
	cfg, err := config.Parse()
	if err != nil {
		return nil, nil, err
	}
	flags := cmd.Flags()
	if v, _ := flags.GetString("calc"); v != "" {
		cfg.Calc = v
	}
	if v, _ := flags.GetUint("prec"); v != 0 {
		cfg.Prec = v
	}
	if v, _ := flags.GetString("constants"); v != "" {
		cfg.Constants = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Debug("configuration loaded", zap.String("config", cfg.String()))

	s, err := session.New(cfg.Calc, session.Options{Prec: cfg.Prec, Format: format, Logger: logger})
	if err != nil {
		return nil, logger, err
	}
	if cfg.Constants != "" {
		cs, err := config.LoadConstants(cfg.Constants)
		if err != nil {
			return nil, logger, err
		}
		for _, c := range cs {
			if err := s.Define(c.Name, c.Value, c.Description); err != nil {
				return nil, logger, fmt.Errorf("%s: %w", cfg.Constants, err)
			}
		}
		logger.Info("loaded constants", zap.String("file", cfg.Constants), zap.Int("count", len(cs)))
	}
	given, _ := flags.GetStringArray("given")
	for _, d := range given {
		name, value, ok := strings.Cut(d, "=")
		if !ok {
			return nil, logger, fmt.Errorf(`constant definitions must be "name=value", not %q`, d)
		}
		if err := s.Define(strings.TrimSpace(name), strings.TrimSpace(value), ""); err != nil {
			return nil, logger, err
		}
	}
	return s, logger, nil
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("fmt")
	s, logger, err := setup(cmd, format)
	if logger != nil {
		defer logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "opexpr:", err)
		return err
	}
	echo, _ := cmd.Flags().GetBool("echo")
	inname, _ := cmd.Flags().GetString("in")
	out := cmd.OutOrStdout()

	failed := 0
	for _, arg := range args {
		if !session.Eval(s, arg, out, echo) {
			failed++
			logger.Warn("expression failed", zap.String("src", arg))
		}
	}
	in, closer, err := infile(cmd, inname, len(args) == 0)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "opexpr:", err)
		return err
	}
	if in != nil {
		defer closer()
		n, err := session.Run(s, in, out, echo, logger)
		failed += n
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "opexpr:", err)
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d expressions failed", failed)
	}
	return nil
}

func ops(cmd *cobra.Command, args []string) error {
	s, logger, err := setup(cmd, "")
	if logger != nil {
		defer logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "opexpr:", err)
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATOR\tKIND\tPRECEDENCE\tDESCRIPTION")
	for _, op := range s.Ops() {
		fmt.Fprintf(w, "%s\t%v\t%d\t%s\n", op.Form, op.Kind, op.Precedence, op.Description)
	}
	return w.Flush()
}

// infile opens the input named by the --in flag. std selects stdin when no
// file is named.
func infile(cmd *cobra.Command, inname string, std bool) (io.Reader, func() error, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	case inname == "-", std:
		return cmd.InOrStdin(), func() error { return nil }, nil
	}
	return nil, nil, nil
}

// initLogger initializes the logger. Logs go to stderr so that they never mix
// with results.
func initLogger(level string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
