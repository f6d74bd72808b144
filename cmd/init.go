package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/longkey1/chatc/internal/chatc/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file",
	Long: `Initialize the configuration file with default settings.
The config file will be created at $HOME/.config/chatc/config.toml by default.
You can specify a different location using the --config option.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Set config file path
		configFile := filepath.Join(userConfigDir(), "config.toml")
		if cfgFile != "" {
			configFile = cfgFile
		}

		// Create config directory
		configDir := filepath.Dir(configFile)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		// Check if config file already exists
		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("config file already exists at: %s", configFile)
		}

		// Create default config
		transcriptDir := filepath.Join(configDir, "transcripts")
		cfg := config.NewDefaultConfig(transcriptDir)

		// Create config file
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		defer f.Close()

		// Encode config to TOML
		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", configFile)
		fmt.Fprintf(cmd.OutOrStdout(), "Transcripts will be stored in: %s (when save_transcripts = true)\n", transcriptDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
