package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/engine"
	apperrors "github.com/Aashaypariskar/Premade-Assignment-sub001/internal/errors"
)

// ScoreResult is the JSON payload of `score`.
type ScoreResult struct {
	Score   int    `json:"score"`
	Answers int    `json:"answers,omitempty"`
	Session string `json:"session,omitempty"`
	Area    string `json:"area,omitempty"`
}

// NewScoreCommand creates the score command.
func NewScoreCommand(rootOpts *RootOptions) *cobra.Command {
	var session, area string

	cmd := &cobra.Command{
		Use:   "score [file|-]",
		Short: "Compute the compliance score of a list of answers",
		Long: `Compute round(100 * OK / (OK + DEFICIENCY)). NA and measured answers
are left out; with nothing assessable the score is 100.

The input is a JSON or YAML list of {status, answer, observed_value}
records, read from a file or from stdin ("-"). With --session the stored
answers of that session are scored instead.

Example:
  echo '[{"status":"OK"},{"answer":"NO"}]' | coachinspect score -
  coachinspect score --session $S --area lavatory`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if session != "" {
				return rootOpts.withApp(cmd, func(ctx context.Context, a *app, f *OutputFormatter) error {
					score, err := a.engine.SessionCompliance(ctx, session, area)
					if err != nil {
						return f.Fail("score session failed", err)
					}
					return outputScore(f, ScoreResult{Score: score, Session: session, Area: area})
				})
			}

			f := rootOpts.formatter(cmd)
			if len(args) == 0 {
				return f.Fail("missing input", apperrors.New(apperrors.CodeValidation, "a file, - or --session is required"))
			}
			answers, err := readAnswers(args[0], cmd.InOrStdin())
			if err != nil {
				exitErr := f.Fail("read answers failed", err)
				if !apperrors.IsValidation(err) {
					exitErr.Code = ExitCommandError
				}
				return exitErr
			}
			return outputScore(f, ScoreResult{Score: engine.ScoreCompliance(answers), Answers: len(answers)})
		},
	}

	cmd.Flags().StringVar(&session, "session", "", "score the stored answers of this session")
	cmd.Flags().StringVar(&area, "area", "", "with --session, only this area")

	return cmd
}

// readAnswers decodes a JSON or YAML answer list from path, or from stdin
// when path is "-". YAML is a superset of JSON, so one decoder serves both.
func readAnswers(path string, stdin io.Reader) ([]engine.AnswerLike, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	answers := []engine.AnswerLike{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&answers); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.Wrap(apperrors.CodeValidation, "invalid answer list", err)
	}
	if err := engine.CheckAnswers(answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func outputScore(f *OutputFormatter, result ScoreResult) error {
	if f.Format == "json" {
		return f.Success(result)
	}
	fmt.Fprintf(f.Writer, "Compliance: %d%%\n", result.Score)
	return nil
}
