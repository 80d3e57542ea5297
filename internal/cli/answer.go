package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/engine"
	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// keyFlags are the flags addressing one answer.
type keyFlags struct {
	session     string
	question    string
	compartment string
	activity    string
}

func (k *keyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&k.session, "session", "", "session id (required)")
	cmd.Flags().StringVar(&k.question, "question", "", "question id (required)")
	cmd.Flags().StringVar(&k.compartment, "compartment", "", "compartment id (AMENITY, COMMISSIONARY)")
	cmd.Flags().StringVar(&k.activity, "activity", "", "activity type (AMENITY, COMMISSIONARY, CAI)")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("question")
}

func (k *keyFlags) key() model.AnswerKey {
	return model.AnswerKey{
		SessionID:     k.session,
		QuestionID:    k.question,
		CompartmentID: k.compartment,
		ActivityType:  k.activity,
	}
}

// NewAnswerCommand creates the answer command group.
func NewAnswerCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answer",
		Short: "Record checklist answers",
	}
	cmd.AddCommand(newAnswerSubmitCommand(rootOpts))
	return cmd
}

func newAnswerSubmitCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		key         keyFlags
		status      string
		value       float64
		reasons     []string
		remarks     string
		beforePhoto string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Record (or replace) the answer to one question",
		Long: `Record the answer to one question. Submitting the same key again
replaces the previous answer and clears any resolution.

A DEFICIENCY needs at least one --reason and a --before-photo. Measured
questions take --value (or --status NA).

Example:
  coachinspect answer submit --session $S --question Q2 --compartment L1 \
      --status DEFICIENCY --reason Cracked --before-photo photos/q2.jpg`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub := engine.Submission{
				Key:         key.key(),
				Status:      status,
				Reasons:     reasons,
				Remarks:     remarks,
				BeforePhoto: beforePhoto,
			}
			if cmd.Flags().Changed("value") {
				sub.ObservedValue = &value
			}

			return rootOpts.withApp(cmd, func(ctx context.Context, a *app, f *OutputFormatter) error {
				answer, err := a.engine.SubmitAnswer(ctx, sub)
				if err != nil {
					return f.Fail("submit answer failed", err)
				}
				if f.Format == "json" {
					return f.Success(answer)
				}
				renderAnswer(f.Writer, answer)
				return nil
			})
		},
	}

	key.register(cmd)
	cmd.Flags().StringVar(&status, "status", "", "OK|DEFICIENCY|NA|MEASURED (legacy YES|NO accepted)")
	cmd.Flags().Float64Var(&value, "value", 0, "observed value for measured questions")
	cmd.Flags().StringArrayVar(&reasons, "reason", nil, "deficiency reason (repeatable)")
	cmd.Flags().StringVar(&remarks, "remarks", "", "free-text remarks")
	cmd.Flags().StringVar(&beforePhoto, "before-photo", "", "photo reference of the deficiency")

	return cmd
}
