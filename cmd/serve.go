package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/longkey1/chatc/internal/backend/devserver"
	"github.com/longkey1/chatc/internal/chatc/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	serveAddr   string
	servePrefix string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a development chat backend",
	Long: `Run a small chat backend that implements the chat endpoint and answers
every message by echoing it back.

It is meant for local development of the client (and of browser front ends,
since it answers CORS preflight requests).

Examples:
  chatc serve                  # Listen on serve_addr (default :5000)
  chatc serve --addr :8080     # Listen on another address`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		addr := cfg.ServeAddr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		if addr == "" {
			addr = config.DefaultAddr
		}
		chatPath := cfg.GetChatPath()

		// The server logs requests at info level unless configured otherwise
		if !viper.InConfig("log_level") && os.Getenv("CHATC_LOG_LEVEL") == "" {
			cfg.LogLevel = "info"
		}
		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		handler := devserver.NewChatHandler(devserver.EchoReplier{Prefix: servePrefix}, logger)
		router := devserver.NewRouter(chatPath, handler, logger)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(os.Stderr, "Serving %s on %s (Ctrl+C to stop)\n", chatPath, addr)
		logger.Debug("dev backend configured", zap.String("addr", addr), zap.String("path", chatPath))

		return devserver.NewServer(addr, router, logger).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", config.DefaultAddr, "Address to listen on")
	serveCmd.Flags().StringVar(&servePrefix, "prefix", "Echo: ", "Text prepended to every echoed reply")
}
