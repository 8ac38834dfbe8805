package main

import "totallines/internal/cli"

func main() {
	cli.Execute()
}
