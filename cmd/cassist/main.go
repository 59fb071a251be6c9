package main

import "github.com/thinkwright/context-assistant/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
