package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/match3/internal/config"
)

var flagConfigResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in match3.yaml. Save it to ~/.match3/configs/match3.yaml
or ./configs/match3.yaml to customise the board, pieces and pacing.

With --resolved, print the configuration that 'play' would use after
the search order, --config and --difficulty have been applied.

Examples:
  match3 config > ~/.match3/configs/match3.yaml
  match3 config --resolved --difficulty hard`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigResolved, "resolved", false, "Print the effective configuration")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if !flagConfigResolved {
		_, err := os.Stdout.Write(config.DefaultMatch3YAML())
		return err
	}

	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	fmt.Printf("# source: %s\n", source)
	_, err = os.Stdout.Write(out)
	return err
}
