package main

import "github.com/ib-tools/flexarc/cmd"

func main() {
	cmd.Execute()
}
