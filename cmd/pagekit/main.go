package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/luxor-creek/Personalized-App/config"
	"github.com/luxor-creek/Personalized-App/pkg/logger"
)

// newRootCmd builds the pagekit command tree. Commands run offline against
// local files and never touch the database.
func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "pagekit",
		Short: "Offline tools for personalized landing pages",
		Long: `pagekit works on exported page templates and contact spreadsheets
without a running API server.

  pagekit catalog                       list the section types
  pagekit render page.json --set first_name=Ann
  pagekit inspect contacts.csv --map email="Work Email"`,
		Version:       config.VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level written to stderr")

	newLogger := func(cmd *cobra.Command) logger.Logger {
		return logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevel)
	}

	root.AddCommand(newCatalogCmd())
	root.AddCommand(newRenderCmd(newLogger))
	root.AddCommand(newInspectCmd(newLogger))
	return root
}

// parseAssignments splits key=value pairs. Keys are trimmed, values are kept as given.
func parseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		out[key] = value
	}
	return out, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
