package main

import "github.com/revu-cli/revu/cmd"

func main() {
	cmd.Execute()
}
