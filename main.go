package main

import (
	"fmt"
	"os"

	"hbconv/cmd/postbank"
	"hbconv/cmd/root"
	"hbconv/cmd/sparda"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(postbank.Cmd)
	root.Cmd.AddCommand(sparda.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
