// Package main is the entry point for the msgextract CLI.
package main

import "msgextract.dev/pkg/msgextract/cmd"

func main() {
	cmd.Execute()
}
