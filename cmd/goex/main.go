package main

import "github.com/goex-lang/goex/internal/cli"

func main() {
	cli.Execute()
}
