package cli

import (
	"fmt"
	"math/rand"
	"time"

	"virusgame/internal/app"
	"virusgame/internal/bot"
	"virusgame/internal/domain"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a game between bots",
		Long: `Simulate seats bots at a new table and lets them play until one of them
holds four sound organs. The same seed replays the same game.

Examples:
  virusctl simulate --players 3
  virusctl simulate --players 6 --seed 42 --bot random --turns`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			players, _ := cmd.Flags().GetInt("players")
			seed, _ := cmd.Flags().GetInt64("seed")
			level, _ := cmd.Flags().GetString("bot")
			maxTurns, _ := cmd.Flags().GetInt("max-turns")
			showTurns, _ := cmd.Flags().GetBool("turns")
			showLog, _ := cmd.Flags().GetBool("log")
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}

			svc := app.NewService(app.NewRegistry(1, 0), rand.New(rand.NewSource(seed)), cfg.MaxPlayers)
			res, err := bot.Simulate(cmd.Context(), svc, bot.Simulation{
				Players:  players,
				Level:    bot.Level(level),
				Seed:     seed,
				MaxTurns: maxTurns,
			})
			if err != nil {
				return err
			}
			if showLog {
				printLog(cmd, res.Final.Log)
			}
			printResult(cmd, res, seed, showTurns)
			return nil
		},
	}
	cmd.Flags().IntP("players", "p", 2, "Number of bots at the table")
	cmd.Flags().Int64P("seed", "s", 0, "Random seed (defaults to the clock)")
	cmd.Flags().StringP("bot", "b", string(bot.LevelGood), "Bot level: good or random")
	cmd.Flags().Int("max-turns", bot.DefaultMaxTurns, "Give up after this many turns")
	cmd.Flags().Bool("turns", false, "Print every move")
	cmd.Flags().Bool("log", false, "Print the game log")
	return cmd
}

func printResult(cmd *cobra.Command, res bot.Result, seed int64, showTurns bool) {
	out := cmd.OutOrStdout()
	dim := color.New(color.Faint)
	if showTurns {
		for i, t := range res.Turns {
			fmt.Fprintf(out, "%s %-8s %s\n", dim.Sprintf("%4d", i+1), t.Player, t.Move)
		}
		fmt.Fprintln(out)
	}

	for _, p := range res.Final.Players {
		fmt.Fprintf(out, "%-8s", p.ID)
		for _, s := range p.Stacks {
			fmt.Fprintf(out, " %s", renderStack(s))
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out)

	if res.Winner != "" {
		fmt.Fprintf(out, "%s won after %d turns (seed %d)\n", color.New(color.FgGreen, color.Bold).Sprint(res.Winner), len(res.Turns), seed)
		return
	}
	fmt.Fprintf(out, "%s after %d turns (seed %d)\n", color.New(color.FgYellow).Sprint("No winner"), len(res.Turns), seed)
}

func printLog(cmd *cobra.Command, log []domain.LogEntry) {
	out := cmd.OutOrStdout()
	errLine := color.New(color.FgRed)
	for _, e := range log {
		if e.IsError {
			fmt.Fprintln(out, errLine.Sprint(e.Text))
			continue
		}
		fmt.Fprintln(out, e.Text)
	}
	fmt.Fprintln(out)
}

// renderStack prints an organ with what sits on it, e.g. [ORGAN_HEART+MEDICINE_HEART].
func renderStack(s domain.Stack) string {
	out := "["
	for i, c := range s {
		if i > 0 {
			out += "+"
		}
		out += paintCard(c)
	}
	return out + "]"
}
