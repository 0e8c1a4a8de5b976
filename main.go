package main

import "github.com/clearfeed/mediascope/cmd"

func main() {
	cmd.Execute()
}
