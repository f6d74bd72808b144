/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/longkey1/chatc/internal/chatc/config"
	"github.com/longkey1/chatc/internal/chatc/conversation"
	"github.com/longkey1/chatc/internal/chatc/exchange"
	"github.com/longkey1/chatc/internal/chatc/session"
	"github.com/longkey1/chatc/internal/chatc/transcript"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var useEditor bool

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send [message]",
	Short: "Send a single message and print the reply",
	Long: `Send one message in a fresh conversation and print the assistant's reply.

If no message is provided as an argument, it reads from stdin.
If --editor flag is set, it opens the default editor (from EDITOR environment variable) to compose the message.

When the backend fails, the printed reply is the standard apology and the
failure is written to the log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		var message string
		if useEditor {
			message, err = getMessageFromEditor()
			if err != nil {
				return fmt.Errorf("getting message from editor: %w", err)
			}
		} else if len(args) > 0 {
			message = strings.Join(args, " ")
		} else {
			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading from stdin: %w", err)
			}
			message = strings.TrimSpace(string(input))
		}

		if strings.TrimSpace(message) == "" {
			return fmt.Errorf("message is empty")
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
		if verbose {
			fmt.Fprintf(os.Stderr, "Session: %s\n", sess.ID)
			fmt.Fprintf(os.Stderr, "Backend: %s\n", backend.URL())
		}

		ctrl := exchange.New(backend, conversation.NewStore(), sess.ID, exchange.WithLogger(logger))
		reply, _ := ctrl.Submit(cmd.Context(), message)

		if cfg.SaveTranscripts {
			t := transcript.New(sess, backend.URL(), ctrl.Conversation().Messages())
			if err := transcript.NewStorage(cfg.TranscriptDir).Save(t); err != nil {
				logger.Warn("failed to save transcript", zap.String("session_id", sess.ID), zap.Error(err))
				fmt.Fprintf(os.Stderr, "Warning: failed to save transcript: %v\n", err)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
		return nil
	},
}

// getMessageFromEditor opens the default editor and returns the edited message
func getMessageFromEditor() (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return "", fmt.Errorf("EDITOR environment variable is not set")
	}

	tmpFile, err := os.CreateTemp("", "chatc-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpFile.Close()
	defer os.Remove(tmpFile.Name())

	cmd := exec.Command(editor, tmpFile.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to open editor: %w", err)
	}

	content, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to read edited content: %w", err)
	}

	return strings.TrimSpace(string(content)), nil
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().BoolVarP(&useEditor, "editor", "e", false, "Use default editor (from EDITOR environment variable) to compose message")
}
