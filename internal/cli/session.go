package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Game session commands",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionFindCmd())
	cmd.AddCommand(newSessionJoinCmd())
	cmd.AddCommand(newSessionReadyCmd())
	cmd.AddCommand(newSessionStartCmd())
	cmd.AddCommand(newSessionScoreCmd())
	cmd.AddCommand(newSessionFinishCmd())
	cmd.AddCommand(newSessionLeaderboardCmd())
	cmd.AddCommand(newSessionQRCmd())

	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post("/api/v1/sessions", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Get session details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <code>",
		Short: "Find sessions by short code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SessionList

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/code/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionJoinCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "join <session-id>",
		Short: "Join a session under a restaurant name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"restaurant_name": name}
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/join", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Restaurant name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSessionReadyCmd() *cobra.Command {
	var notReady bool

	cmd := &cobra.Command{
		Use:   "ready <session-id>",
		Short: "Mark yourself ready (or not)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]bool{"ready": !notReady}
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/ready", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&notReady, "not", false, "Clear the ready flag instead")

	return cmd
}

func newSessionStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <session-id>",
		Short: "Start the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/start", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionScoreCmd() *cobra.Command {
	var points int

	cmd := &cobra.Command{
		Use:   "score <session-id>",
		Short: "Submit a mini-game score increment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{"increment": points}
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/score", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&points, "points", 0, "Points earned in the round (required)")
	_ = cmd.MarkFlagRequired("points")

	return cmd
}

func newSessionFinishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finish <session-id>",
		Short: "Finish the game and declare the winner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/finish", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard <session-id>",
		Short: "Show the ranked standings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboard

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s/leaderboard", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionQRCmd() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "qr <session-id>",
		Short: "Download the session's join QR code as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			png, err := client.GetRaw(fmt.Sprintf("/api/v1/sessions/%s/qr", args[0]))
			if err != nil {
				return err
			}

			if err := os.WriteFile(outFile, png, 0644); err != nil {
				return fmt.Errorf("failed to write QR image: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("QR code saved to %s", outFile))
			return nil
		},
	}

	cmd.Flags().StringVar(&outFile, "out", "rumble-qr.png", "Output file path")

	return cmd
}
