// Package commands holds the domain-radar CLI
package commands

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Kropiunig/domain-radar/internal/platform/logger"
)

var (
	profilePath string
	stateDir    string
)

// Execute runs the CLI
func Execute() error {
	root := &cobra.Command{
		Use:           "domain-radar",
		Short:         "Domain name availability scanner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(logger.FromEnv())

			// flags win over env; the default state dir lives in $HOME
			if stateDir == "" && os.Getenv("CORE_STATE_DIR") == "" {
				home, err := os.UserHomeDir()
				if err == nil {
					stateDir = filepath.Join(home, ".domain-radar")
				}
			}
			mustSetEnv("CORE_STATE_DIR", stateDir)
			mustSetEnv("CORE_SCAN_PROFILE", profilePath)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&profilePath, "profile", "", "scan profile YAML (default $CORE_SCAN_PROFILE)")
	root.PersistentFlags().StringVar(&stateDir, "state-dir", "", "state directory for the file backend (default ~/.domain-radar)")

	root.AddCommand(scanCmd(), statusCmd(), foundCmd(), initCmd(), versionCmd())
	return root.Execute()
}

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}
