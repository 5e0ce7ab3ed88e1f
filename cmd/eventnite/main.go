package main

import "eventnite/internal/cli"

func main() {
	cli.Execute()
}
