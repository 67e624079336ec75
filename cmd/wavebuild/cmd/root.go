// Package cmd implements the wavebuild command-line tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "wavebuild",
	Short: "build wavefront-marched surf meshes",
	Long: `wavebuild turns a terrain file and a wave source description into a
triangulated surf mesh:
	- build meshes from terrain + wave source inputs,
	- save them to binary buffer files,
	- tweak build settings via YAML,
	- benchmark a batch of builds and print aggregate timing.`,
}

// Execute adds all child commands to the root command and executes it. It
// only needs to happen once, from main.main().
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
