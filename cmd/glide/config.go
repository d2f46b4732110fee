package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the game would run with, after the config
file search and the --difficulty preset are applied. The output is valid
YAML and can be saved as a starting point for --config.

Search order:
  --config <path> -> ~/.glide/configs/glide.yaml -> ./configs/glide.yaml -> built-in defaults

Examples:
  glide config
  glide config --difficulty hard > ~/.glide/configs/glide.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
