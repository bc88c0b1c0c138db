package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"artie/internal/app"
	"artie/internal/config"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var flags struct {
		transport  string
		serialPort string
		baud       int
		backend    string
		model      string
		prompt     string
		gateway    string
		history    string
		verbose    bool
	}

	cmd := &cobra.Command{
		Use:   "artie",
		Short: "LLM-driven desk robot driver",
		Long: `artie drives the Artie desk robot: it reads sensor telemetry from the
robot link, turns user input and environment changes into language-model
queries, and sends validated display and actuation commands back.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadDotEnv("[artie]")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			fs := cmd.Flags()
			if fs.Changed("transport") {
				cfg.Transport = flags.transport
			}
			if fs.Changed("serial-port") {
				cfg.SerialPort = flags.serialPort
			}
			if fs.Changed("baud") {
				cfg.SerialBaud = flags.baud
			}
			if fs.Changed("backend") {
				cfg.Backend = flags.backend
			}
			if fs.Changed("model") {
				cfg.Model = flags.model
			}
			if fs.Changed("prompt-file") {
				cfg.PromptFile = flags.prompt
			}
			if fs.Changed("gateway-addr") {
				cfg.GatewayAddr = flags.gateway
			}
			if fs.Changed("history-path") {
				cfg.HistoryPath = flags.history
			}
			if fs.Changed("verbose") {
				cfg.Verbose = flags.verbose
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.transport, "transport", config.TransportSerial, "robot link: serial, mqtt or sim")
	f.StringVar(&flags.serialPort, "serial-port", config.DefaultSerialPort, "serial device path")
	f.IntVar(&flags.baud, "baud", config.DefaultSerialBaud, "serial baud rate")
	f.StringVar(&flags.backend, "backend", config.BackendOllama, "model backend: ollama or openai")
	f.StringVar(&flags.model, "model", config.DefaultModel, "model name")
	f.StringVar(&flags.prompt, "prompt-file", config.DefaultPromptFile, "persona prompt file")
	f.StringVar(&flags.gateway, "gateway-addr", config.DefaultGatewayAddr, "websocket gateway listen address (empty disables)")
	f.StringVar(&flags.history, "history-path", "", "sqlite history file (empty disables)")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose logging")

	return cmd
}
