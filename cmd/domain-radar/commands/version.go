package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/Kropiunig/domain-radar/internal/core/version"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the domain-radar version",
		Run: func(cmd *cobra.Command, args []string) {
			bi := version.Info()
			commit := bi.Commit
			if commit == "none" {
				// dev builds without ldflags still carry the VCS revision
				if info, ok := debug.ReadBuildInfo(); ok {
					for _, s := range info.Settings {
						if s.Key == "vcs.revision" && len(s.Value) >= 12 {
							commit = s.Value[:12]
						}
					}
				}
			}
			fmt.Printf("%s %s (%s, built %s)\n", bi.Service, bi.Version, commit, bi.Date)
		},
	}
}
