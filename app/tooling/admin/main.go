// This program performs administrative tasks against a running node.
package main

import (
	"fmt"
	"os"

	"github.com/ardanlabs/chainsync/app/tooling/admin/commands"
)

func main() {
	if err := commands.Run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "admin:", err)
		os.Exit(1)
	}
}
