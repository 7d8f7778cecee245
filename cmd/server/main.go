// Package main is the entry point for the collectibles server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "collectibles-api",
	Short: "Collectibles API server",
	Long:  `Collectibles API manages character collections, accessory minting, equipment, and the accessory marketplace.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
