package main

import (
	"errors"
	"os"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Vovarama1992/human_translator/internal/apiclient"
	"github.com/Vovarama1992/human_translator/internal/error_notificator"
)

// globals holds the persistent flags shared by the client commands.
type globals struct {
	apiURL  string
	timeout time.Duration
	verbose bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:          "human-translator",
		Short:        "Web front end and command line client for the HumanTranslator API",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// .env is optional when the environment already carries the values.
			_ = godotenv.Load()
		},
	}

	root.PersistentFlags().StringVar(&g.apiURL, "api-url", "", "API base URL (defaults to $API_BASE_URL)")
	root.PersistentFlags().DurationVar(&g.timeout, "timeout", 30*time.Second, "per-request timeout")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "log API failures to stderr")

	root.AddCommand(
		newServeCmd(),
		newStubCmd(),
		newHealthCmd(g),
		newLanguagesCmd(g),
		newTranslateCmd(g),
		newSpeakCmd(g),
		newTranscribeCmd(g),
	)
	return root
}

func (g *globals) client() (*apiclient.Client, error) {
	url := g.apiURL
	if url == "" {
		url = os.Getenv("API_BASE_URL")
	}
	if url == "" {
		return nil, errors.New("API base URL is not set: use --api-url or API_BASE_URL")
	}
	return apiclient.New(url, apiclient.WithTimeout(g.timeout))
}

// notifier logs failures only in verbose mode so command output stays clean.
func (g *globals) notifier() error_notificator.Notificator {
	if !g.verbose {
		return nil
	}
	return error_notificator.NewService(error_notificator.NewInfra(newLogger()))
}

func newLogger() *logger.ZapLogger {
	baseLogger, err := zap.NewProduction()
	if err != nil {
		baseLogger = zap.NewNop()
	}
	return logger.NewZapLogger(baseLogger.Sugar())
}
