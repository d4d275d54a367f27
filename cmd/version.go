package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uischema/uischema/share"
)

var printAllVersion bool
var versionTemplate = `Version:	  %s
Go version:	  %s
Git commit:	  %s
Built:	          %s
OS/Arch:	  %s/%s
`
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Long:  "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		if printAllVersion {
			commit := strings.Split(share.PRVERSION, "-")[0]
			buildTime := strings.TrimPrefix(share.PRVERSION, commit+"-")
			fmt.Printf(versionTemplate,
				share.VERSION,
				runtime.Version(),
				commit, buildTime,
				runtime.GOOS,
				runtime.GOARCH)
			return
		}
		fmt.Println(share.VERSION)
	},
}

func init() {
	versionCmd.PersistentFlags().BoolVarP(&printAllVersion, "all", "", false, "Print all version information")
}
