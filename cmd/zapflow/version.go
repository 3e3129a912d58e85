package main

import (
	"fmt"

	"github.com/aryarajalves/zapflow"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of zapflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("zapflow version %s\n", zapflow.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
