package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/uischema/uischema/config"
	"github.com/uischema/uischema/schema"
	"github.com/uischema/uischema/share"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the configure or a resolved schema",
	Long:  "Show the configure, or the resolved form of a schema file when one is given",
	Run: func(cmd *cobra.Command, args []string) {
		Boot()

		if len(args) == 0 {
			res, err := jsoniter.MarshalIndent(config.Conf, "", "  ")
			if err != nil {
				fmt.Println(color.RedString("Fatal: %s", err.Error()))
				os.Exit(1)
			}
			fmt.Println(string(res))
			return
		}

		filename := args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			fmt.Println(color.RedString("Fatal: %s", err.Error()))
			os.Exit(1)
		}

		id := share.ID(config.Conf.Root, filename)
		dsl, err := schema.LoadData(data, id)
		if err != nil {
			fmt.Println(color.RedString("Fatal: %s", err.Error()))
			os.Exit(1)
		}

		registry := schema.NewRegistry(schema.WithValidators(schema.BasicValidator))
		if err := registry.Register(id, dsl); err != nil {
			fmt.Println(color.RedString("Fatal: %s", err.Error()))
			os.Exit(1)
		}

		resolved, err := registry.Get(id)
		if err != nil {
			fmt.Println(color.RedString("Fatal: %s", err.Error()))
			os.Exit(1)
		}

		res, err := jsoniter.MarshalIndent(resolved, "", "  ")
		if err != nil {
			fmt.Println(color.RedString("Fatal: %s", err.Error()))
			os.Exit(1)
		}
		fmt.Println(string(res))
	},
}
