package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/letterboxed/internal/board"
	"github.com/robalobadob/letterboxed/internal/config"
	"github.com/robalobadob/letterboxed/internal/game"
	"github.com/robalobadob/letterboxed/internal/httpserver"
	"github.com/robalobadob/letterboxed/internal/store"
	"github.com/robalobadob/letterboxed/internal/words"
)

const (
	exitOK    = 0
	exitLoad  = 1
	exitUsage = 2
)

// exitError carries a process exit status out of a cobra command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// run executes the CLI and returns the process exit status.
func run(cfg config.Config, args []string, stdin io.Reader, stdout io.Writer) int {
	cmd := newRootCmd(cfg, stdin, stdout)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// cobra's own failures: unknown flags, unknown commands.
	return exitUsage
}

func newRootCmd(cfg config.Config, stdin io.Reader, stdout io.Writer) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "letterboxed BOARD DICTIONARY",
		Short:         "Validate a Letter Boxed word chain read from stdin",
		Long: `Validate a Letter Boxed word chain read from stdin, one word per line.

BOARD holds one side per line and needs at least 3 sides. Setting
LETTERBOXED_MIN_SIDES raises that minimum, so a board with fewer sides is
reported as "Invalid board".

A BOARD file named like a subcommand (serve, help) must be given with a
path, e.g. ./serve.`,
		Args:          exactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logLevel != "" {
				lvl, err := zerolog.ParseLevel(logLevel)
				if err != nil {
					return &exitError{code: exitUsage, err: fmt.Errorf("log level %q: %w", logLevel, err)}
				}
				setupLogging(lvl)
				return nil
			}
			// An unusable LOG_LEVEL is ignored, like any other bad env value.
			lvl, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil || cfg.LogLevel == "" {
				lvl, _ = zerolog.ParseLevel(defaultLevel(cmd))
			}
			setupLogging(lvl)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			b, d, err := loadInputs(cfg, args[0], args[1], stdout)
			if err != nil {
				return err
			}
			v, err := game.New(b, d).Run(stdin)
			if err != nil {
				log.Error().Err(err).Msg("read words")
				return &exitError{code: exitLoad, err: err}
			}
			log.Info().Str("state", string(v.State)).Str("reason", string(v.Reason)).Str("word", v.Word).Msg("verdict")
			fmt.Fprintln(stdout, v.Message())
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(io.Discard)
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace|debug|info|warn|error); overrides LOG_LEVEL")

	root.AddCommand(serveCmd(cfg, stdout))
	return root
}

func serveCmd(cfg config.Config, stdout io.Writer) *cobra.Command {
	addr := cfg.Addr
	cmd := &cobra.Command{
		Use:   "serve BOARD DICTIONARY",
		Short: "Serve validation over HTTP",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, d, err := loadInputs(cfg, args[0], args[1], stdout)
			if err != nil {
				return err
			}
			srv := httpserver.New(b, d, store.NewMemoryStore(), cfg.ClientOrigin)
			log.Info().Str("addr", addr).Int("sides", b.NumSides()).Int("words", d.Len()).Msg("starting letterboxed server")
			if err := srv.Start(addr); err != nil {
				log.Error().Err(err).Msg("server exited")
				return &exitError{code: exitLoad, err: err}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", addr, "listen address; overrides LETTERBOXED_ADDR")
	return cmd
}

// exactArgs is cobra.ExactArgs with the usage exit status attached.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &exitError{code: exitUsage, err: err}
		}
		return nil
	}
}

// loadInputs loads the board, then the dictionary. An invalid board prints
// its verdict line; unreadable files print nothing.
func loadInputs(cfg config.Config, boardPath, dictPath string, stdout io.Writer) (*board.Board, *words.Dictionary, error) {
	b, err := board.LoadFile(boardPath, cfg.MinSides)
	if errors.Is(err, board.ErrInvalidBoard) {
		log.Warn().Err(err).Str("path", boardPath).Msg("board rejected")
		fmt.Fprintln(stdout, game.ReasonInvalidBoard.Message())
		return nil, nil, &exitError{code: exitLoad, err: err}
	}
	if err != nil {
		log.Error().Err(err).Str("path", boardPath).Msg("failed to load board")
		return nil, nil, &exitError{code: exitLoad, err: err}
	}

	d, err := words.LoadFile(dictPath)
	if err != nil {
		log.Error().Err(err).Str("path", dictPath).Msg("failed to load dictionary")
		return nil, nil, &exitError{code: exitLoad, err: err}
	}
	return b, d, nil
}

// defaultLevel keeps the CLI quiet and lets the server log requests.
func defaultLevel(cmd *cobra.Command) string {
	if cmd.Name() == "serve" {
		return "info"
	}
	return "warn"
}

func setupLogging(lvl zerolog.Level) {
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
