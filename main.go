// ABOUTME: Entry point for the eamctl CLI
// ABOUTME: Terminal console for the Sagmcom EAM backend gateway

package main

import (
	"fmt"
	"os"

	"github.com/sagmcom/eamctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
