package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// SessionView is the JSON payload of `session show`.
type SessionView struct {
	Session  model.Session         `json:"session"`
	Progress model.SessionProgress `json:"progress"`
}

// NewSessionCommand creates the session command group.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Create, inspect and complete inspection sessions",
	}

	cmd.AddCommand(newSessionCreateCommand(rootOpts))
	cmd.AddCommand(newSessionShowCommand(rootOpts))
	cmd.AddCommand(newSessionListCommand(rootOpts))
	cmd.AddCommand(newSessionCompleteCommand(rootOpts))

	return cmd
}

func newSessionCreateCommand(rootOpts *RootOptions) *cobra.Command {
	var coach, module string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new inspection session for a coach",
		Long: `Open a new IN_PROGRESS session for one coach in one module.

Example:
  coachinspect session create --coach 22436-B4 --module AMENITY`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(cmd, func(ctx context.Context, a *app, f *OutputFormatter) error {
				m, err := model.ParseModuleKind(module)
				if err != nil {
					return f.Fail("invalid module", err)
				}
				sess, err := a.engine.CreateSession(ctx, coach, m)
				if err != nil {
					return f.Fail("create session failed", err)
				}
				if f.Format == "json" {
					return f.Success(sess)
				}
				fmt.Fprintf(f.Writer, "Created session %s (%s, coach %s)\n", sess.ID, sess.Module, sess.CoachRef)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&coach, "coach", "", "coach reference (required)")
	cmd.Flags().StringVar(&module, "module", "", "module: AMENITY|SICKLINE|CAI|COMMISSIONARY (required)")
	_ = cmd.MarkFlagRequired("coach")
	_ = cmd.MarkFlagRequired("module")

	return cmd
}

func newSessionShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <session-id>",
		Short:         "Show a session and the progress of every area",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(cmd, func(ctx context.Context, a *app, f *OutputFormatter) error {
				sess, err := a.engine.GetSession(ctx, args[0])
				if err != nil {
					return f.Fail("show session failed", err)
				}
				progress, err := a.engine.ComputeSessionProgress(ctx, sess.ID)
				if err != nil {
					return f.Fail("show session failed", err)
				}
				if f.Format == "json" {
					return f.Success(SessionView{Session: sess, Progress: progress})
				}
				renderSessionProgress(f.Writer, sess, progress)
				return nil
			})
		},
	}
}

func newSessionListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List sessions, oldest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(cmd, func(ctx context.Context, a *app, f *OutputFormatter) error {
				sessions, err := a.engine.ListSessions(ctx)
				if err != nil {
					return f.Fail("list sessions failed", err)
				}
				if f.Format == "json" {
					return f.Success(sessions)
				}
				renderSessions(f.Writer, sessions)
				return nil
			})
		},
	}
}

func newSessionCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <session-id>",
		Short: "Lock a session whose every area is COMPLETED",
		Long: `Lock a session. Every area the module inspects must be COMPLETED: all
required items answered and no open defects. A completed session rejects
further answers and resolutions.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.withApp(cmd, func(ctx context.Context, a *app, f *OutputFormatter) error {
				sess, err := a.engine.CompleteSession(ctx, args[0])
				if err != nil {
					return f.Fail("complete session failed", err)
				}
				if f.Format == "json" {
					return f.Success(sess)
				}
				fmt.Fprintf(f.Writer, "✓ Session %s completed\n", sess.ID)
				return nil
			})
		},
	}
}
