package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/uischema/uischema/config"
	"github.com/uischema/uischema/schema"
	"github.com/uischema/uischema/share"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the schema files",
	Long:  "Validate the schema files under the root directory",
	Run: func(cmd *cobra.Command, args []string) {
		Boot()

		root := config.Conf.Root
		if len(args) > 0 {
			root = args[0]
		}

		if share.DirNotExists(root) {
			fmt.Println(color.RedString("Fatal: %s does not exist", root))
			os.Exit(1)
		}

		registry := schema.NewRegistry(schema.WithValidators(schema.BasicValidator))
		failures := 0
		total := 0
		err := share.Walk(root, ".json", func(root, filename string) {
			id := share.ID(root, filename)
			total++

			data, err := os.ReadFile(filename)
			if err != nil {
				failures++
				fmt.Println(color.RedString("FAIL"), id, err.Error())
				return
			}

			dsl, err := schema.LoadData(data, id)
			if err != nil {
				failures++
				fmt.Println(color.RedString("FAIL"), id, err.Error())
				return
			}

			if err := registry.Register(id, dsl); err != nil {
				failures++
				fmt.Println(color.RedString("FAIL"), id, err.Error())
				return
			}

			fmt.Println(color.GreenString("PASS"), id)
		})

		if err != nil {
			fmt.Println(color.RedString("Fatal: %s", err.Error()))
			os.Exit(1)
		}

		fmt.Println("")
		if failures > 0 {
			fmt.Println(color.RedString("%d of %d schemas invalid", failures, total))
			os.Exit(1)
		}
		fmt.Println(color.GreenString("%d schemas valid", total))
	},
}
