package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const forceFlagName = "force"

// initConfigKeys are the settings written by init. Log settings stay out of
// the file; they usually come from the environment.
var initConfigKeys = []string{
	configVersionKey,
	projectConfigKey,
	schemeConfigKey,
	excludeConfigKey,
	parallelConfigKey,
	formatConfigKey,
	langConfigKey,
	wrapConfigKey,
	bundlePathConfigKey,
}

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default msgextract.yaml configuration file",
		Long: `Create a msgextract.yaml in the current working directory holding the
project, id scheme, exclude patterns and bundle settings currently in effect,
so they can be edited instead of repeated on every run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			out := viper.New()
			for _, key := range initConfigKeys {
				out.Set(key, viper.Get(key))
			}

			write := out.SafeWriteConfigAs
			if force, _ := cmd.Flags().GetBool(forceFlagName); force {
				write = out.WriteConfigAs
			}

			if err := write(targetPath); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("wrote %s\n", targetPath)

			return nil
		},
	}

	cmd.Flags().Bool(forceFlagName, false, "overwrite an existing configuration file")

	return cmd
}

func init() {
	rootCmd.AddCommand(initCmd)
}
