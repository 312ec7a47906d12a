package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rumbledev/restaurant-rumble/internal/dependencies/clock"
	"github.com/rumbledev/restaurant-rumble/internal/minigame"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a mini-game round and submit the score",
	}

	cmd.AddCommand(newPlayTapCmd())

	return cmd
}

func newPlayTapCmd() *cobra.Command {
	var cells int

	cmd := &cobra.Command{
		Use:   "tap <session-id>",
		Short: "Play a tap round on stdin",
		Long: `Play a tap round: type cell numbers (0-based) and press enter to tap them.
Each cell scores once. The round ends when the grid is cleared or the
window closes, and the score is submitted to the session.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTapRound(args[0], cells)
		},
	}

	cmd.Flags().IntVar(&cells, "cells", minigame.DefaultTapCells, "Number of cells in the grid")

	return cmd
}

func runTapRound(sessionID string, cells int) error {
	round := minigame.NewTapRound(clock.New(), cells)

	fmt.Printf("Tap round: %d cells, %s on the clock. Type a cell number and press enter.\n",
		round.Cells(), minigame.DefaultWindow)

	// Feed stdin lines through a channel so the deadline can interrupt
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	timer := time.NewTimer(time.Until(round.Deadline()))
	defer timer.Stop()

loop:
	for !round.Done() {
		select {
		case line, ok := <-lines:
			if !ok {
				break loop
			}
			cell, err := strconv.Atoi(line)
			if err != nil {
				fmt.Printf("not a cell number: %q\n", line)
				continue
			}
			if round.Tap(cell) {
				fmt.Printf("hit! score %d\n", round.Score())
			} else {
				fmt.Println("miss")
			}
		case <-timer.C:
			break loop
		}
	}

	fmt.Printf("Round over. Submitting %d points...\n", round.Score())

	err := round.Submit(context.Background(), func(_ context.Context, increment int) error {
		var result Session
		req := map[string]int{"increment": increment}
		return client.Post(fmt.Sprintf("/api/v1/sessions/%s/score", sessionID), req, &result)
	})
	if err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.PrintMessage(fmt.Sprintf("Submitted %d points", round.Score()))
	return nil
}
