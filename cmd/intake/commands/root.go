package commands

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/WailSalutem-Health-Care/patient-intake/internal/config"
	"github.com/WailSalutem-Health-Care/patient-intake/internal/logger"
)

var (
	configPath string
	backendURL string

	cfg config.Config
)

func Execute() error {
	root := &cobra.Command{
		Use:   "intake",
		Short: "Quick-add patient intake for the WailSalutem patient service",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			logger.Setup(os.Stderr)

			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}
			cfg = loaded

			if backendURL != "" {
				cfg.Backend.BaseURL = backendURL
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to intake.yml (optional)")
	root.PersistentFlags().StringVar(&backendURL, "backend", "", "patient service base URL (overrides config)")

	root.AddCommand(quickAddCmd())

	return root.Execute()
}
