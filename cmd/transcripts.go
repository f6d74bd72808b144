package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/longkey1/chatc/internal/chatc/config"
	"github.com/longkey1/chatc/internal/chatc/transcript"
	"github.com/spf13/cobra"
)

var forceDelete bool

// transcriptsCmd represents the transcripts command
var transcriptsCmd = &cobra.Command{
	Use:   "transcripts",
	Short: "Manage saved conversation transcripts",
	Long: `Manage saved conversation transcripts including listing, viewing, and deleting them.

Transcripts are written after each exchange when save_transcripts = true.
They are a read-only record; a conversation is never resumed from a transcript.`,
}

func openTranscriptStorage() (*transcript.Storage, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return transcript.NewStorage(cfg.TranscriptDir), nil
}

// transcriptsListCmd represents the transcripts list command
var transcriptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all transcripts",
	Long:  `List all saved transcripts sorted by most recently updated.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, err := openTranscriptStorage()
		if err != nil {
			return err
		}

		transcripts, err := storage.List()
		if err != nil {
			return fmt.Errorf("listing transcripts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(transcripts) == 0 {
			fmt.Fprintln(out, "No transcripts found.")
			fmt.Fprintln(out, "\nEnable transcripts with save_transcripts = true in the config file.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSTARTED\tUPDATED\tMESSAGES\tBACKEND")
		fmt.Fprintln(w, "--\t-------\t-------\t--------\t-------")

		for _, t := range transcripts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				t.GetShortID(),
				t.StartedAt.Format("2006-01-02 15:04"),
				t.UpdatedAt.Format("2006-01-02 15:04"),
				t.MessageCount(),
				t.BackendURL,
			)
		}
		w.Flush()

		fmt.Fprintln(out, "\nUse 'chatc transcripts show <id>' to view a transcript.")
		return nil
	},
}

// transcriptsShowCmd represents the transcripts show command
var transcriptsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a transcript",
	Long: `Show a saved transcript including all messages.

The ID can be a short ID (minimum 4 characters), the full session ID, or "latest" for the most recent transcript.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, err := openTranscriptStorage()
		if err != nil {
			return err
		}

		t, err := storage.Find(args[0])
		if err != nil {
			return fmt.Errorf("finding transcript: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Session: %s\n", t.SessionID)
		if t.BackendURL != "" {
			fmt.Fprintf(out, "Backend: %s\n", t.BackendURL)
		}
		fmt.Fprintf(out, "Started: %s\n", t.StartedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Updated: %s\n", t.UpdatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Messages: %d\n", t.MessageCount())
		fmt.Fprintln(out)

		if len(t.Messages) == 0 {
			fmt.Fprintln(out, "No messages in this transcript.")
			return nil
		}

		fmt.Fprintln(out, "Message History:")
		fmt.Fprintln(out, "----------------")
		for i, msg := range t.Messages {
			fmt.Fprintf(out, "\n[%d] %s:\n%s\n", i+1, msg.Label(), msg.Text)
		}
		return nil
	},
}

// transcriptsDeleteCmd represents the transcripts delete command
var transcriptsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a transcript",
	Long: `Delete a saved transcript permanently.

The ID can be a short ID (minimum 4 characters), the full session ID, or "latest" for the most recent transcript.

Warning: This action cannot be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, err := openTranscriptStorage()
		if err != nil {
			return err
		}

		t, err := storage.Find(args[0])
		if err != nil {
			return fmt.Errorf("finding transcript: %w", err)
		}

		if !forceDelete {
			fmt.Fprintf(os.Stderr, "Are you sure you want to delete transcript %s? [y/N]: ", t.GetShortID())
			var response string
			fmt.Fscanln(cmd.InOrStdin(), &response)

			if response != "y" && response != "Y" {
				fmt.Fprintln(os.Stderr, "Deletion cancelled.")
				return nil
			}
		}

		if err := storage.Delete(t.SessionID); err != nil {
			return fmt.Errorf("deleting transcript: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Transcript %s deleted successfully.\n", t.GetShortID())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transcriptsCmd)
	transcriptsCmd.AddCommand(transcriptsListCmd)
	transcriptsCmd.AddCommand(transcriptsShowCmd)
	transcriptsCmd.AddCommand(transcriptsDeleteCmd)

	transcriptsDeleteCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "Delete without confirmation")
}
