package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Kropiunig/domain-radar/internal/platform/config"
	scanmod "github.com/Kropiunig/domain-radar/internal/services/scan/module"
)

func foundCmd() *cobra.Command {
	var zone string

	cmd := &cobra.Command{
		Use:   "found",
		Short: "List the domains found available so far",
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
			findings, err := states.LoadFound(ctx)
			if err != nil {
				return err
			}

			if zone != "" && !strings.HasPrefix(zone, ".") {
				zone = "." + zone
			}
			n := 0
			for _, f := range findings {
				if zone != "" && f.Zone != zone {
					continue
				}
				n++
				tag := ""
				if f.Premium {
					tag = "  premium"
				}
				fmt.Printf("%-32s %-14s $%8.2f%s\n", f.Domain, f.Strategy, f.Price, tag)
			}
			if n == 0 {
				fmt.Println("nothing found yet")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&zone, "zone", "", "only findings in this zone, e.g. .io")
	return cmd
}
