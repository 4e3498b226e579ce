package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"msgextract.dev/pkg/msgextract/internal/domain"
	m "msgextract.dev/pkg/msgextract/internal/model"
)

var errNoBundle = errors.New("no bundle to check: pass --bundle or set bundle.path")

var checkBundleFlag string

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Verify that a translation bundle is up to date",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle := viper.GetString(bundlePathConfigKey)
			if cmd.Flags().Changed(bundleFlagName) {
				bundle = checkBundleFlag
			}

			if strings.TrimSpace(bundle) == "" {
				return errNoBundle
			}

			return workflow.Check(cmd.Context(), domain.CheckArgs{
				SourceArgs: sourceArgs(args),
				Bundle:     m.Path(bundle),
				Wrap:       viper.GetBool(wrapConfigKey),
				Lang:       viper.GetString(langConfigKey),
			})
		},
	}

	cmd.Flags().StringVarP(&checkBundleFlag, bundleFlagName, "b", "", "bundle file to compare (default: bundle.path from config)")

	return cmd
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
