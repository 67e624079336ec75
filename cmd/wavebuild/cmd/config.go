package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidewave/wavemesh/config"
)

// orchestratorConfig is the YAML-loadable build settings file shape.
// config.BuildConfig.WithDefaults fills any field left zero, so a settings
// file may override just the options it cares about.
type orchestratorConfig struct {
	config.BuildConfig `yaml:",inline"`
}

var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "create a build settings file",
	Long: `Create a build settings file in YAML format, prefilled with default
values. If FILE is not provided, 'wavebuild.yml' is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "wavebuild.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		ok, err := confirmIfExists(path, fmt.Sprintf("file %q already exists, overwrite? [y/N]", path))
		if !ok {
			if err == nil {
				fmt.Println("aborted by user")
			} else {
				fmt.Println("aborted:", err)
			}
			return
		}
		check(marshalYAMLFile(path, orchestratorConfig{BuildConfig: config.Default()}))
		fmt.Printf("build settings written to %q\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}
