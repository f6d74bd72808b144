package cmd

import (
	"fmt"
	"os"

	"github.com/longkey1/chatc/internal/chatc/config"
	"github.com/longkey1/chatc/internal/chatc/conversation"
	"github.com/longkey1/chatc/internal/chatc/exchange"
	"github.com/longkey1/chatc/internal/chatc/session"
	"github.com/longkey1/chatc/internal/chatc/transcript"
	"github.com/longkey1/chatc/internal/ui/repl"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var themeFlag string

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start an interactive conversation",
	Long: `Start an interactive chat conversation with the configured backend.

Every start creates a new session; conversations are never resumed.
Each message you send is answered by exactly one assistant message.
If the backend cannot be reached, a short apology is shown instead and the
details are written to the log.

Examples:
  chatc start                 # Start a conversation
  chatc start --theme dark    # Start with the dark theme
  echo "Hi" | chatc start     # Send piped lines one by one`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStart(cmd)
	},
}

func runStart(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if themeFlag != "" {
		cfg.Theme = themeFlag
	}
	theme, err := cfg.GetTheme()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	backend, err := newBackend(cfg, logger)
	if err != nil {
		return err
	}

	sess := session.New()
	logger.Debug("session started", zap.String("session_id", sess.ID), zap.String("backend", backend.URL()))

	ctrl := exchange.New(backend, conversation.NewStore(), sess.ID, exchange.WithLogger(logger))

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	opts := repl.Options{
		Theme:       theme,
		BackendURL:  backend.URL(),
		Interactive: interactive,
		ShowTyping:  isatty.IsTerminal(os.Stderr.Fd()),
		Logger:      logger,
	}
	if cfg.SaveTranscripts {
		opts.Transcripts = transcript.NewStorage(cfg.TranscriptDir)
	}

	if err := repl.New(ctrl, sess, opts).Run(cmd.Context()); err != nil {
		return fmt.Errorf("interactive mode: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVar(&themeFlag, "theme", "", "Theme to use (light or dark)")
	rootCmd.Flags().StringVar(&themeFlag, "theme", "", "Theme to use (light or dark)")
}
