// Package cli implements virusctl, an operator tool to browse the deck and
// run bot-only games without a Nakama server.
package cli

import (
	"fmt"
	"os"
	"strings"

	"virusgame/internal/config"
	"virusgame/internal/domain"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the virusctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "virusctl",
		Short: "Tool for inspecting the Virus! deck and simulating games",
		Long: `virusctl explains the cards of the Virus! deck and plays bot-only games
with the same engine the Nakama module runs.

Examples:
  virusctl cards
  virusctl help VIRUS_HEART
  virusctl simulate --players 4 --seed 7 --bot good`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				color.NoColor = true
			}
		},
	}
	root.PersistentFlags().StringP("config", "c", "", "TOML game config; VIRUS_* environment variables override it")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")

	root.AddCommand(newCardsCmd(), newSimulateCmd())
	root.SetHelpCommand(newHelpCmd(root))
	return root
}

// Execute runs virusctl with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// newHelpCmd replaces cobra's help so that "help CARD" explains a card and
// "help COMMAND" keeps working.
func newHelpCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "help [card|command]",
		Short: "Explain a card, or help about any command",
		Long: `Help explains a card by name, for example 'virusctl help MEDICINE_BRAIN'.
Given a command name instead it prints the usage of that command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if c, err := domain.ParseCard(args[0]); err == nil {
					return explainCard(cmd, c)
				}
			}
			target, _, err := root.Find(args)
			if err != nil || target == nil || (target == root && len(args) > 0) {
				return fmt.Errorf("unknown card or command %q, run 'virusctl cards' to list the cards", strings.Join(args, " "))
			}
			return target.Help()
		},
	}
}

// loadConfig reads the --config file, if any, and overlays VIRUS_* variables.
func loadConfig(cmd *cobra.Command) (config.GameConfig, error) {
	c := config.Default()
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("failed to read game config: %w", err)
		}
		if c, err = config.Parse(data); err != nil {
			return c, err
		}
	}
	if err := config.ApplyEnv(&c, environMap(os.Environ())); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}
