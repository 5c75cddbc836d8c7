// Package main implements the keyhandler CLI tool.
// It uploads, removes and lists an SSH public key across EC2 regions.
package main

import "github.com/runvoy/keyhandler/cmd/keyhandler/cmd"

func main() {
	cmd.Execute()
}
