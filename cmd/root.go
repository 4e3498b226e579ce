// Package cmd provides the root command and CLI setup for msgextract.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"msgextract.dev/pkg/msgextract/internal/adapter"
	"msgextract.dev/pkg/msgextract/internal/controller"
	"msgextract.dev/pkg/msgextract/internal/domain"
	m "msgextract.dev/pkg/msgextract/internal/model"
)

var jsFileAdapter adapter.JSFileAdapter
var sourceFSAdapter adapter.SourceFSAdapter
var scanner domain.Scanner
var workflow domain.Workflow
var ui *outputUI

// Root-level flags shared by the extraction commands.
var (
	projectFlag     string
	schemeFlag      string
	excludePatterns []string
	parallelFlag    int
	formatFlag      string
	langFlag        string
	wrapFlag        bool
	logFileFlag     string
	verboseFlag     bool
)

// outputUI forwards to the UI selected once flags and config are known.
type outputUI struct {
	controller.UI
}

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = &outputUI{UI: controller.NewSimpleUI(rootCmd)}
	jsFileAdapter = adapter.NewLocalJSFileAdapter()
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	scanner = domain.NewScanner()
	workflow = domain.NewWorkflow(
		sourceFSAdapter,
		jsFileAdapter,
		ui,
		scanner,
	)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory for .js files
  - ./src/...      recursively scan src directory
  - ./a ./b/x.js   scan directories (non-recursive) and single files`

const rootLongDescription = `msgextract extracts Closure goog.getMsg messages from JavaScript sources
and writes them as a translation bundle (XTB). Every message gets a
deterministic id derived from its text, placeholder positions and the
project name, so translations survive re-extraction.

` + pathPatternsHelp

const extractLongDescription = `Extract messages and write one <translation> line per message
(default: current directory, recursively).

` + pathPatternsHelp

const listLongDescription = `List extracted messages with their ids, placeholders and descriptions.

` + pathPatternsHelp

const checkLongDescription = `Compare a translation bundle on disk with a fresh extraction and fail
with a diff when it is out of date.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "msgextract",
		Short:         "Closure message extractor",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))

			selected, err := controller.NewUI(cmd, viper.GetString(formatConfigKey), controller.IsTTY(os.Stdout))
			if err != nil {
				return err
			}

			ui.UI = selected

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVarP(&projectFlag, projectFlagName, "p", viper.GetString(projectConfigKey), "project name seeding every message id")
	bindFlagToConfig(flags.Lookup(projectFlagName), projectConfigKey)

	flags.StringVar(&schemeFlag, schemeFlagName, viper.GetString(schemeConfigKey), "message id scheme (canonical, closure)")
	bindFlagToConfig(flags.Lookup(schemeFlagName), schemeConfigKey)

	flags.StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(flags.Lookup(excludeFlagName), excludeConfigKey)

	flags.IntVarP(&parallelFlag, parallelFlagName, "j", viper.GetInt(parallelConfigKey), "number of source files processed in parallel")
	bindFlagToConfig(flags.Lookup(parallelFlagName), parallelConfigKey)

	flags.StringVar(&formatFlag, formatFlagName, viper.GetString(formatConfigKey), "report format (auto, table, yaml)")
	bindFlagToConfig(flags.Lookup(formatFlagName), formatConfigKey)

	flags.StringVar(&langFlag, langFlagName, viper.GetString(langConfigKey), "bundle language (BCP 47) used with --wrap")
	bindFlagToConfig(flags.Lookup(langFlagName), langConfigKey)

	flags.BoolVar(&wrapFlag, wrapFlagName, viper.GetBool(wrapConfigKey), "wrap output in an XML translationbundle document")
	bindFlagToConfig(flags.Lookup(wrapFlagName), wrapConfigKey)

	flags.StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(flags.Lookup(logFileFlagName), logFilenameKey)

	flags.BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(flags.Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}

// sourceArgs collects the run-wide settings shared by every command.
func sourceArgs(args []string) domain.SourceArgs {
	return domain.SourceArgs{
		Paths:    parsePaths(args),
		Exclude:  viper.GetStringSlice(excludeConfigKey),
		Project:  viper.GetString(projectConfigKey),
		Scheme:   viper.GetString(schemeConfigKey),
		Parallel: viper.GetInt(parallelConfigKey),
	}
}
