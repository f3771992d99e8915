package main

import "github.com/timvw/zellij-nvim/cmd"

func main() {
	cmd.Execute()
}
