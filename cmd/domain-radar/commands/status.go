package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Kropiunig/domain-radar/internal/platform/config"
	scanmod "github.com/Kropiunig/domain-radar/internal/services/scan/module"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the last persisted run status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New()
			ctx := context.Background()

			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close(context.Background()) }()

			states, err := scanmod.OpenState(ctx, scanmod.FromConfig(cfg), st)
			if err != nil {
				return err
			}
			status, err := states.LoadStatus(ctx)
			if err != nil {
				return err
			}
			if status.RunID == "" {
				fmt.Println("no run recorded yet")
				return nil
			}

			out, err := json.MarshalIndent(status, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}
