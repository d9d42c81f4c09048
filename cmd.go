package main

import (
	"context"
	"fmt"
	"go/token"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"wasmfixtures/fixtures"
)

var (
	// Global flags
	configPath  string
	variantFlag string
	globalFlags []string
	verbose     bool
	outFile     string

	cfg    *Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wasmfixtures",
	Short: "Run the wasm2wasm fixture assertions as Go code",
	Long: `wasmfixtures evaluates the //wasm: pragmas attached to the fixture
functions (assert_return, assert_trap, invoke) against either the C or the
C++ variant of the fixture module.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadEffectiveConfig(cmd)
		if err != nil {
			return err
		}
		logger, err = buildLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debug("config loaded",
			zap.String("variant", cfg.Variant),
			zap.Strings("globals", cfg.GlobalNames()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Evaluate the pragmas of Go source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScripts,
}

var emitCmd = &cobra.Command{
	Use:   "emit [files...]",
	Short: "Write a wast script with the actual results of each pragma",
	Args:  cobra.MinimumNArgs(1),
	RunE:  emitScripts,
}

var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "List the exports of the selected variant",
	Args:  cobra.NoArgs,
	RunE:  listExports,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&variantFlag, "variant", "", "fixture variant: c or cxx")
	rootCmd.PersistentFlags().StringArrayVar(&globalFlags, "global", nil, "imported global, module.name=value (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print out extra information")
	emitCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file")
	_ = rootCmd.RegisterFlagCompletionFunc("variant", variantCompletions)

	rootCmd.AddCommand(runCmd, emitCmd, exportsCmd)
}

// loadEffectiveConfig applies command line flags on top of the config file.
func loadEffectiveConfig(cmd *cobra.Command) (*Config, error) {
	c, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if variantFlag != "" {
		c.Variant = variantFlag
	}
	for _, g := range globalFlags {
		name, value, ok := strings.Cut(g, "=")
		if !ok {
			return nil, fmt.Errorf("--global %q: expected module.name=value", g)
		}
		v, err := parseI32(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("--global %q: %w", g, err)
		}
		if err := c.SetGlobal(strings.TrimSpace(name), v); err != nil {
			return nil, fmt.Errorf("--global %q: %w", g, err)
		}
	}
	if outFile != "" {
		c.Out = outFile
	}
	return c, c.Validate()
}

func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func runAll(ctx context.Context, files []string) ([]*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	globals, err := cfg.ImportGlobals()
	if err != nil {
		return nil, err
	}
	runner := NewRunner(cfg.ParsedVariant(), globals, logger)
	fset := token.NewFileSet()
	reports := make([]*Report, 0, len(files))
	for _, fileName := range files {
		logger.Debug("parsing script", zap.String("file", fileName))
		src, err := ParseScriptFile(fset, fileName, nil)
		if err != nil {
			return nil, err
		}
		report, err := runner.Run(ctx, src)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func runScripts(cmd *cobra.Command, args []string) error {
	reports, err := runAll(cmd.Context(), args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	var passed, failed, skipped int
	for _, r := range reports {
		for _, res := range r.Results {
			if res.Outcome == Fail {
				fmt.Fprintf(out, "FAIL %s %s: %s\n", positionString(res.Directive.Pos), res.Directive, res.Reason)
			}
		}
		passed += r.Passed
		failed += r.Failed
		skipped += r.Skipped
	}
	fmt.Fprintf(out, "%d passed, %d failed, %d skipped\n", passed, failed, skipped)
	if failed > 0 {
		return fmt.Errorf("%d directive(s) failed", failed)
	}
	return nil
}

func emitScripts(cmd *cobra.Command, args []string) error {
	reports, err := runAll(cmd.Context(), args)
	if err != nil {
		return err
	}
	writer := &FormattingWriterImpl{}
	for _, r := range reports {
		printReport(writer, r, cfg.Variant)
	}
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "--- begin wast output\n%s--- end wast output\n", writer.String())
	}
	if _, err := writer.WriteToFile(cfg.Out); err != nil {
		return err
	}
	logger.Info("output written", zap.String("file", cfg.Out))
	return nil
}

func listExports(cmd *cobra.Command, args []string) error {
	v := cfg.ParsedVariant()
	table, err := fixtures.Exports(v)
	if err != nil {
		return err
	}
	for _, name := range fixtures.ExportNames(v) {
		e := table[name]
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", e.Name, e.Alias, signatureString(e))
	}
	return nil
}

func signatureString(e *fixtures.Export) string {
	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.String()
	}
	results := make([]string, len(e.Results))
	for i, r := range e.Results {
		results[i] = r.String()
	}
	return "(" + strings.Join(params, " ") + ") -> (" + strings.Join(results, " ") + ")"
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func variantCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{string(fixtures.VariantC), string(fixtures.VariantCXX)}, cobra.ShellCompDirectiveNoFileComp
}
