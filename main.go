package main

import "github.com/marsdev/ctxbench/cli"

func main() {
	cli.Execute()
}
