package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/config"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/harness"
)

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run inspection scenarios against the engine",
		Long: `Run every scenario file in a directory against a fresh in-memory engine.

Each scenario carries its own catalog, opens one session and checks the
result of every step and its final assertions. The configured database is
not touched.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (missing directory, etc.)

Examples:
  coachinspect test ./scenarios
  coachinspect test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(rootOpts, args[0], cmd)
		},
	}
}

func runTests(opts *RootOptions, dir string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = f.Error("NOT_FOUND", fmt.Sprintf("scenarios directory not found: %s", dir), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", dir))
	}

	var logOpts []harness.Option
	if opts.Verbose {
		logOpts = append(logOpts, harness.WithLogger(config.Default().NewLogger(cmd.ErrOrStderr(), true)))
	}

	result, err := harness.RunSuite(cmd.Context(), dir, logOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "run scenarios", err)
	}

	if f.Format == "json" {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		outputTestText(f, result)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", result.Failed, result.TotalScenarios))
	}
	return nil
}

func outputTestText(f *OutputFormatter, result *harness.SuiteResult) {
	s := newStyles(f.Writer)
	if result.TotalScenarios == 0 {
		fmt.Fprintln(f.Writer, s.muted.Render("No scenarios found."))
		return
	}
	for _, fail := range result.Failures {
		fmt.Fprintln(f.Writer, s.bad.Render("✗ "+fail.ScenarioPath))
		fmt.Fprintf(f.Writer, "    %s\n", fail.Error)
	}
	summary := fmt.Sprintf("%d/%d scenarios passed", result.Passed, result.TotalScenarios)
	if result.Failed > 0 {
		fmt.Fprintln(f.Writer, s.bad.Render(summary))
		return
	}
	fmt.Fprintln(f.Writer, s.ok.Render("✓ "+summary))
}
