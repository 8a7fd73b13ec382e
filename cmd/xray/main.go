package main

import "xray/internal/cli"

func main() {
	cli.Execute()
}
