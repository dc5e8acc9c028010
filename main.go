// Package main is the entry point for the extract-infor CLI.
package main

import "github.com/tienduong-21/extract-infor/cmd"

func main() {
	cmd.Execute()
}
