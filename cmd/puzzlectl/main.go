package main

import "github.com/mcoot/puzzle-progress/internal/cli"

func main() {
	cli.Execute()
}
