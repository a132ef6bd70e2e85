package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kibitz-bridge/kibitz/internal/auction"
	"github.com/kibitz-bridge/kibitz/internal/config"
	"github.com/kibitz-bridge/kibitz/internal/rules"
	"github.com/kibitz-bridge/kibitz/internal/sayc"
	"github.com/kibitz-bridge/kibitz/internal/types"
)

var bidCmd = &cobra.Command{
	Use:   "bid",
	Short: "Suggest the next call for a hand",
	Long:  `Bid interprets the auction so far and prints the highest-priority call the convention table produces for the given hand.`,
	RunE:  runBid,
}

func init() {
	rootCmd.AddCommand(bidCmd)
	bidCmd.Flags().String("hand", "", "hand as spades.hearts.diamonds.clubs, e.g. AKQ52.T87.32.K54")
	bidCmd.Flags().String("auction", "", "calls so far, space separated, e.g. \"1H P\"")
	bidCmd.Flags().Int("solver-budget", -1, "solver step budget (0 = unlimited)")
}

// loadEngine resolves config, flags, and the system table for bid and
// explain alike.
func loadEngine(cmd *cobra.Command) (*rules.System, *config.EngineConfig, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if systemName != "" {
		cfg.System = systemName
	}
	if cmd.Flags().Changed("solver-budget") {
		budget, _ := cmd.Flags().GetInt("solver-budget")
		cfg.SolverBudget = budget
	}

	system, err := sayc.ByName(cfg.System)
	if err != nil {
		return nil, nil, err
	}
	return system, cfg, nil
}

func runBid(cmd *cobra.Command, args []string) error {
	handArg, _ := cmd.Flags().GetString("hand")
	if handArg == "" {
		return fmt.Errorf("--hand required")
	}
	hand, err := types.ParseHand(handArg)
	if err != nil {
		return fmt.Errorf("failed to parse hand: %w", err)
	}

	auctionArg, _ := cmd.Flags().GetString("auction")
	auct, err := auction.Parse(auctionArg)
	if err != nil {
		return fmt.Errorf("failed to parse auction: %w", err)
	}

	system, cfg, err := loadEngine(cmd)
	if err != nil {
		return err
	}

	bidder := rules.Bidder{System: system, SolverBudget: cfg.SolverBudget}
	call, ok, err := bidder.FindCall(hand, auct)
	if err != nil {
		return err
	}
	if !ok {
		// a rule-set gap is data, not a crash
		fmt.Fprintln(cmd.OutOrStdout(), "no applicable call")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), call.String())
	return nil
}
