// Copyright © 2025 The cssls authors

package main

import "github.com/luthersystems/cssls/cmd"

func main() {
	cmd.Execute()
}
