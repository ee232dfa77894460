// Package main is the entry point for the gcadm CLI.
package main

import "github.com/adminlayers/gcadm/internal/cli"

func main() {
	cli.Execute()
}
