package main

import (
	"github.com/uischema/uischema/cmd"
)

func main() {
	cmd.Execute()
}
