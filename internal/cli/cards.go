package cli

import (
	"fmt"

	"virusgame/internal/domain"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newCardsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "List every card of the deck",
		Long: `Cards lists the identities of the 65-card deck with the number of copies
of each. Use --kind to keep only organs, viruses, medicines or treatments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			verbose, _ := cmd.Flags().GetBool("verbose")
			return listCards(cmd, kind, verbose)
		},
	}
	cmd.Flags().StringP("kind", "k", "", "Only list cards of this kind (organ, virus, medicine, treatment)")
	cmd.Flags().BoolP("verbose", "v", false, "Also print what each card does")
	return cmd
}

func listCards(cmd *cobra.Command, kind string, verbose bool) error {
	out := cmd.OutOrStdout()
	width := termWidth(out)
	header := color.New(color.Bold)

	entries := domain.Catalog()
	nameWidth := 0
	for _, e := range entries {
		nameWidth = max(nameWidth, len(e.Card.String()))
	}
	shown, total := 0, 0
	fmt.Fprintln(out, header.Sprintf("%-*s %-10s %5s  %s", nameWidth, "CARD", "KIND", "COPIES", "TITLE"))
	for _, e := range entries {
		if kind != "" && e.Kind != kind {
			continue
		}
		fmt.Fprintf(out, "%s %-10s %5d  %s\n", paintPadded(e.Card, nameWidth), e.Kind, e.Count, e.Title)
		if verbose {
			fmt.Fprintln(out, wrap(e.Help, width, "    "))
		}
		shown++
		total += e.Count
	}
	if shown == 0 {
		return fmt.Errorf("no cards of kind %q", kind)
	}
	fmt.Fprintf(out, "%d identities, %d cards\n", shown, total)
	return nil
}

func explainCard(cmd *cobra.Command, c domain.Card) error {
	out := cmd.OutOrStdout()
	for _, e := range domain.Catalog() {
		if e.Card != c {
			continue
		}
		label := color.New(color.FgCyan)
		fmt.Fprintf(out, "%s %s\n", label.Sprint("Card:  "), paintCard(c))
		fmt.Fprintf(out, "%s %s\n", label.Sprint("Title: "), e.Title)
		fmt.Fprintf(out, "%s %s, %d in the deck\n", label.Sprint("Kind:  "), e.Kind, e.Count)
		fmt.Fprintln(out)
		fmt.Fprintln(out, wrap(e.Help, termWidth(out), ""))
		return nil
	}
	return fmt.Errorf("%s is not in the deck", c)
}

// paintPadded pads the card name to width before coloring so columns line up.
func paintPadded(c domain.Card, width int) string {
	name := fmt.Sprintf("%-*s", width, c.String())
	if p, ok := kindColors[c.Kind()]; ok {
		return p.Sprint(name)
	}
	return name
}
