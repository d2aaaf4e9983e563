package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fitrate/fitrate/internal/arena"
	"github.com/fitrate/fitrate/internal/backend"
)

var (
	arenaUserID  string
	arenaAPIBase string
	arenaTimeout time.Duration
)

var arenaCmd = &cobra.Command{
	Use:   "arena",
	Short: "Join the battle arena queue and wait for an opponent",
	RunE:  runArena,
}

func init() {
	arenaCmd.Flags().StringVar(&arenaUserID, "user", "", "User id to queue with (required)")
	arenaCmd.Flags().StringVar(&arenaAPIBase, "api-base", "", "FitRate backend origin (default: production)")
	arenaCmd.Flags().DurationVar(&arenaTimeout, "timeout", arena.DefaultQueueTimeout, "How long to wait for a match")
	_ = arenaCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(arenaCmd)
}

func runArena(cmd *cobra.Command, _ []string) error {
	client := backend.New(arenaAPIBase)
	queue := arena.NewQueue(client, 0, arenaTimeout)

	fmt.Println("Searching for an opponent...")
	match, err := queue.Run(cmd.Context(), arenaUserID)
	if err != nil {
		var noOpp *arena.ErrNoOpponents
		if errors.As(err, &noOpp) {
			fmt.Printf("No opponents found after %s. Try again later.\n", noOpp.Waited.Round(time.Second))
			return nil
		}
		return err
	}

	fmt.Printf("Matched against %s (battle %s)\n", match.Opponent, match.BattleID)

	battle, err := arena.WatchBattle(cmd.Context(), client, match.BattleID, 0, func(b *backend.Battle) {
		fmt.Printf("Battle %s: %s\n", b.ID, b.Status)
	})
	if err != nil {
		return err
	}
	fmt.Printf("Battle complete. Winner: %s\n", battle.WinnerUserID)
	return nil
}
