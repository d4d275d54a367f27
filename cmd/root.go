package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/exception"

	"github.com/uischema/uischema/config"
	"github.com/uischema/uischema/share"
)

var rootPath string
var envFile string

var rootCmd = &cobra.Command{
	Use:   share.BUILDNAME,
	Short: "UI Schema Engine",
	Long:  `UI Schema Engine`,
	Args:  cobra.MinimumNArgs(1),
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(os.Stderr, "One or more arguments are not correct", args)
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(
		versionCmd,
		validateCmd,
		inspectCmd,
	)
	rootCmd.PersistentFlags().StringVarP(&rootPath, "root", "r", "", "Schema root directory")
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", "", "Environment file")
}

// Execute run the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Boot load the configuration
func Boot() {
	root := config.Conf.Root
	if rootPath != "" {
		r, err := filepath.Abs(rootPath)
		if err != nil {
			exception.New("Root error %s", 500, err.Error()).Throw()
		}
		root = r
	}
	if envFile != "" {
		config.Conf = config.LoadFrom(envFile)
	} else {
		config.Conf = config.LoadFrom(filepath.Join(root, ".env"))
	}
	config.Conf.Root = root

	if config.Conf.Mode == "production" {
		config.Production()
	} else if config.Conf.Mode == "development" {
		config.Development()
	}
}
