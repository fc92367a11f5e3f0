// Package main provides the entry point for the hook-engine CLI.
package main

import "hookchain/hook-engine/cmd"

func main() {
	cmd.Execute()
}
