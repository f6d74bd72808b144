/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/longkey1/chatc/internal/chatc/config"
	"github.com/longkey1/chatc/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chatc",
	Short: "A terminal chat client for a conversational backend",
	Long: `chatc is a command-line chat client that talks to a conversational backend
over a single JSON endpoint (POST /api/chat).

Running chatc without a subcommand starts an interactive conversation.
You can configure the tool using a TOML configuration file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStart(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/chatc/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// userConfigDir returns $HOME/.config/chatc
func userConfigDir() string {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	return filepath.Join(home, ".config", "chatc")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// CHATC_* variables may also come from a .env file in the working directory;
	// variables already set in the environment take precedence.
	godotenv.Load()

	// Set environment variable prefix and automatic env
	viper.SetEnvPrefix("CHATC") // Set prefix for environment variables
	viper.AutomaticEnv()        // read in environment variables that match

	// Determine config directory for user config
	configDir := userConfigDir()
	defaultConfig := config.NewDefaultConfig(filepath.Join(configDir, "transcripts"))

	// Set default values from config package
	viper.SetDefault("base_url", defaultConfig.BaseURL)
	viper.SetDefault("chat_path", defaultConfig.ChatPath)
	viper.SetDefault("timeout", defaultConfig.Timeout)
	viper.SetDefault("theme", defaultConfig.Theme)
	viper.SetDefault("save_transcripts", defaultConfig.SaveTranscripts)
	viper.SetDefault("transcript_dir", defaultConfig.TranscriptDir)
	viper.SetDefault("log_file", defaultConfig.LogFile)
	viper.SetDefault("log_level", defaultConfig.LogLevel)
	viper.SetDefault("serve_addr", defaultConfig.ServeAddr)

	// Bind environment variables
	viper.BindEnv("base_url", "CHATC_BASE_URL")
	viper.BindEnv("timeout", "CHATC_TIMEOUT")
	viper.BindEnv("log_level", "CHATC_LOG_LEVEL")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search config in the user config directory
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, "Environment variables:")
		fmt.Fprintln(os.Stderr, "  CHATC_BASE_URL:", viper.GetString("base_url"))
		fmt.Fprintln(os.Stderr, "  CHATC_TIMEOUT:", viper.GetString("timeout"))
		fmt.Fprintln(os.Stderr, "  CHATC_LOG_LEVEL:", viper.GetString("log_level"))
	}
}

// newLogger builds the diagnostic logger from cfg; --verbose forces debug output
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(logging.Options{
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
		Development: verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}
