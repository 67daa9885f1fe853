package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/hatchsocial/hatchclient"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit, and build date of hatchctl.`,
		// Version needs no configuration.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			info := hatchclient.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "hatchctl %s\n", info["version"])
			fmt.Fprintf(out, "  Commit:     %s\n", info["commit"])
			fmt.Fprintf(out, "  Built:      %s\n", info["build_date"])
			fmt.Fprintf(out, "  Go version: %s\n", info["go_version"])
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
