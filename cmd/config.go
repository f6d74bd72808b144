package cmd

import (
	"fmt"
	"strings"

	"github.com/longkey1/chatc/internal/chatc/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFields = "configfile, base_url, chat_path, chat_url, timeout, theme, save_transcripts, transcript_dir, log_file, log_level, serve_addr"

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.

If a field name is specified, only that field's value is displayed.
Available fields: ` + configFields + `

Examples:
  chatc config                 # Show all configuration
  chatc config base_url        # Show only the backend base URL
  chatc config chat_url        # Show the resolved chat endpoint`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration from file
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		out := cmd.OutOrStdout()
		chatURL, urlErr := cfg.ChatURL()
		if urlErr != nil {
			chatURL = fmt.Sprintf("(invalid: %v)", urlErr)
		}

		// If a field is specified, show only that field
		if len(args) > 0 {
			field := strings.ToLower(args[0])
			switch field {
			case "configfile":
				fmt.Fprintln(out, viper.ConfigFileUsed())
			case "base_url", "baseurl":
				fmt.Fprintln(out, cfg.BaseURL)
			case "chat_path", "chatpath":
				fmt.Fprintln(out, cfg.ChatPath)
			case "chat_url", "chaturl":
				fmt.Fprintln(out, chatURL)
			case "timeout":
				fmt.Fprintln(out, cfg.Timeout)
			case "theme":
				fmt.Fprintln(out, cfg.Theme)
			case "save_transcripts", "savetranscripts":
				fmt.Fprintln(out, cfg.SaveTranscripts)
			case "transcript_dir", "transcriptdir":
				fmt.Fprintln(out, cfg.TranscriptDir)
			case "log_file", "logfile":
				fmt.Fprintln(out, cfg.LogFile)
			case "log_level", "loglevel":
				fmt.Fprintln(out, cfg.LogLevel)
			case "serve_addr", "serveaddr":
				fmt.Fprintln(out, cfg.ServeAddr)
			default:
				return fmt.Errorf("unknown field: %s (available fields: %s)", args[0], configFields)
			}
			return nil
		}

		// Display all configuration values
		fmt.Fprintf(out, "ConfigFile: %s\n", viper.ConfigFileUsed())
		fmt.Fprintf(out, "BaseURL: %s\n", cfg.BaseURL)
		fmt.Fprintf(out, "ChatPath: %s\n", cfg.ChatPath)
		fmt.Fprintf(out, "ChatURL: %s\n", chatURL)
		fmt.Fprintf(out, "Timeout: %s\n", cfg.Timeout)
		fmt.Fprintf(out, "Theme: %s\n", cfg.Theme)
		fmt.Fprintf(out, "SaveTranscripts: %v\n", cfg.SaveTranscripts)
		fmt.Fprintf(out, "TranscriptDir: %s\n", cfg.TranscriptDir)
		fmt.Fprintf(out, "LogFile: %s\n", cfg.LogFile)
		fmt.Fprintf(out, "LogLevel: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "ServeAddr: %s\n", cfg.ServeAddr)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
