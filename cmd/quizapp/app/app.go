// Package app contains the main entrypoint for the quiz app.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/starquake/quizapp/internal/config"
	"github.com/starquake/quizapp/internal/console"
	"github.com/starquake/quizapp/internal/database"
	"github.com/starquake/quizapp/internal/logging"
	"github.com/starquake/quizapp/internal/session"
	"github.com/starquake/quizapp/internal/store"
)

// application holds what the commands share once the library is open.
type application struct {
	cfg    *config.Config
	logger *logging.Logger
	stdin  io.Reader
	stdout io.Writer

	ctrl    *session.Controller
	console *console.Console
}

// Run parses the configuration, opens the quiz library and executes the command given by args.
// The library is saved before Run returns, also when the command failed or was interrupted.
func Run(
	ctx context.Context,
	args []string,
	getenv func(string) string,
	stdin io.Reader,
	stdout, stderr io.Writer,
) error {
	mainCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var err error
	var cfg *config.Config
	if cfg, err = config.Parse(getenv); err != nil {
		msg := "error parsing config"
		logging.NewLogger(stderr).Error(ctx, msg, logging.ErrAttr(err))

		return fmt.Errorf("%s: %w", msg, err)
	}

	logger := logging.NewLoggerWithLevel(stderr, cfg.LogLevel)
	database.SetupGoose()

	a := &application{cfg: cfg, logger: logger, stdin: stdin, stdout: stdout}
	defer a.close(ctx)

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err = root.ExecuteContext(mainCtx); err != nil {
		return fmt.Errorf("error running command: %w", err)
	}

	return nil
}

func (a *application) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "quizapp",
		Short:             "Create, play and delete multiple-choice quizzes",
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.open,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.console.Run(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the quizzes",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				a.console.List()

				return nil
			},
		},
		&cobra.Command{
			Use:   "play [name]",
			Short: "Play a quiz, asks which one when no name is given",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if len(args) == 0 {
					return a.console.Play(cmd.Context())
				}

				return a.console.PlayQuiz(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "create",
			Short: "Create a quiz",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.console.Create(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a quiz",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.console.DeleteQuiz(cmd.Context(), args[0])
			},
		},
	)

	return root
}

// open loads the library before any command runs.
func (a *application) open(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	st, err := store.New(ctx, a.cfg, a.logger)
	if err != nil {
		msg := "error opening quiz store"
		a.logger.Error(ctx, msg, logging.ErrAttr(err))

		return fmt.Errorf("%s: %w", msg, err)
	}

	lib := store.NewLibrary(st, a.logger)
	lib.Open(ctx)
	a.logger.Debug(ctx, "quiz library opened",
		logging.String("driver", a.cfg.StoreDriver),
		logging.String("path", a.cfg.StorePath),
		logging.Int("quizzes", lib.Len()),
	)

	a.ctrl = session.NewController(lib, a.logger)
	a.console = console.New(a.ctrl, a.stdin, a.stdout, a.logger, a.cfg.NoColor)

	return nil
}

// close saves the library. It runs after an interrupt too, so it does not use the canceled context.
func (a *application) close(ctx context.Context) {
	if a.ctrl == nil {
		return
	}
	if err := a.ctrl.Close(context.WithoutCancel(ctx)); err != nil {
		a.logger.Error(ctx, "error closing quiz library", logging.ErrAttr(err))
	}
}
