package cmd

import (
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"msgextract.dev/pkg/msgextract/internal/domain/msgid"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the msgextract build version, the Go version it was built with and the supported id schemes.",
		Run: func(cmd *cobra.Command, _ []string) {
			version := "unknown"
			goVersion := "unknown"

			if info, ok := debug.ReadBuildInfo(); ok {
				if info.Main.Version != "" {
					version = info.Main.Version
				}

				goVersion = info.GoVersion
			}

			cmd.Printf("msgextract version\t%s\n", version)
			cmd.Printf("go version\t\t%s\n", goVersion)
			cmd.Printf("id schemes\t\t%s (default %s)\n", strings.Join(msgid.Schemes(), ", "), msgid.DefaultScheme)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
