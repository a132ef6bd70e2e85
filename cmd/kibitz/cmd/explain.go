package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kibitz-bridge/kibitz/internal/auction"
	"github.com/kibitz-bridge/kibitz/internal/rules"
	"github.com/kibitz-bridge/kibitz/internal/types"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain what an auction says about each hand",
	Long:  `Explain replays the auction through the convention table and prints, per seat, the suit lengths and point range the calls have promised.`,
	RunE:  runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
	explainCmd.Flags().String("auction", "", "calls so far, space separated, e.g. \"1N P 2C\"")
	explainCmd.Flags().Int("solver-budget", -1, "solver step budget (0 = unlimited)")
}

var (
	seatStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	annStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("11"))
)

func runExplain(cmd *cobra.Command, args []string) error {
	auctionArg, _ := cmd.Flags().GetString("auction")
	auct, err := auction.Parse(auctionArg)
	if err != nil {
		return fmt.Errorf("failed to parse auction: %w", err)
	}
	if auct.Len() == 0 {
		return fmt.Errorf("--auction required")
	}

	system, cfg, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	if auct.Len() > cfg.MaxExplainCalls {
		return fmt.Errorf("auction has %d calls, max_explain_calls is %d", auct.Len(), cfg.MaxExplainCalls)
	}

	interpreter := rules.Interpreter{System: system, SolverBudget: cfg.SolverBudget}
	history, err := interpreter.History(auct)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n\n", labelStyle.Render("auction:"), auct)
	for _, pos := range types.Positions {
		view := history.View(pos)
		section, err := renderSeat(view)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, section)
	}
	return nil
}

// renderSeat formats one seat's inferred holdings. Seats that have not
// called still render; their ranges are just the axioms.
func renderSeat(view rules.PositionView) (string, error) {
	var b strings.Builder

	header := seatStyle.Render(view.Position().String())
	if last, ok := view.LastCall(); ok {
		header += labelStyle.Render(" (last call " + last.String() + ")")
	}
	b.WriteString(header)
	b.WriteString("\n")

	for _, strain := range types.Suits {
		min, err := view.MinLength(strain)
		if err != nil {
			return "", err
		}
		max, err := view.MaxLength(strain)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "  %-9s %d-%d\n", strain.Name(), min, max)
	}

	minPts, maxPts, err := view.PointRange()
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "  %-9s %d-%d\n", "points", minPts, maxPts)

	if anns := view.Annotations(); len(anns) > 0 {
		names := make([]string, len(anns))
		for i, a := range anns {
			names[i] = string(a)
		}
		fmt.Fprintf(&b, "  %s\n", annStyle.Render(strings.Join(names, ", ")))
	}
	return b.String(), nil
}
