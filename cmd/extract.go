package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"msgextract.dev/pkg/msgextract/internal/domain"
	m "msgextract.dev/pkg/msgextract/internal/model"
)

var outputFlag string

// extractCmd represents the extract command.
var extractCmd = newExtractCmd()

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [paths...]",
		Short: "Extract messages into a translation bundle",
		Long:  extractLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Extract(cmd.Context(), domain.ExtractArgs{
				SourceArgs: sourceArgs(args),
				Output:     m.Path(viper.GetString(bundlePathConfigKey)),
				Out:        cmd.OutOrStdout(),
				Wrap:       viper.GetBool(wrapConfigKey),
				Lang:       viper.GetString(langConfigKey),
			})
		},
	}

	configureExtractFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func configureExtractFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFlag, outputFlagName, "o", viper.GetString(bundlePathConfigKey), "bundle file to write (default: stdout)")
	bindFlagToConfig(cmd.Flags().Lookup(outputFlagName), bundlePathConfigKey)
}
