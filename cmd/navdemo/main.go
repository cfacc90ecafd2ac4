package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var VERSION = "UNKNOWN"

func main() {
	rootCmd := &cobra.Command{
		Use:          "navdemo",
		Short:        "headless navigation demo",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		RunCmd(),
		SceneCmd(),
		VersionCmd(),
	)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), VERSION)
		},
	}
}
