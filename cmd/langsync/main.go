package main

import "langsync/internal/cli"

func main() {
	cli.Execute()
}
