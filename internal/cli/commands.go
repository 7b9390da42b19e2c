package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Log in with a handle, minting an identity on first use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := client.Login(args[0])
			if err != nil {
				return err
			}

			if err := cfg.SaveUser(id.UserID); err != nil {
				return fmt.Errorf("failed to save user: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(*id)
			return nil
		},
	}
}

func newJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join",
		Short: "Request a pairing: wait in a room or start a duel",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.UserID == "" {
				return fmt.Errorf("not logged in: run 'wordduel login <username>' first")
			}

			room, err := client.Join(cfg.UserID)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*room)
			return nil
		},
	}
}

func newRoomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "room <roomId>",
		Short: "Show a room's matchmaking state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			room, err := client.GetRoom(args[0])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*room)
			return nil
		},
	}
}

func newGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game <roomId>",
		Short: "Show a game's public snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := client.GetGame(args[0])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*g)
			return nil
		},
	}
}

func newMoveCmd() *cobra.Command {
	var roomID string

	cmd := &cobra.Command{
		Use:   "move <guess>",
		Short: "Submit a letter or full-word guess",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.UserID == "" {
				return fmt.Errorf("not logged in: run 'wordduel login <username>' first")
			}
			if roomID == "" {
				return fmt.Errorf("--room is required")
			}

			update, err := client.Move(roomID, cfg.UserID, args[0])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*update)
			return nil
		},
	}

	cmd.Flags().StringVar(&roomID, "room", "", "Room id (required)")
	_ = cmd.MarkFlagRequired("room")

	return cmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe all three services",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			services := []struct {
				name string
				url  string
			}{
				{"identity", cfg.IdentityURL},
				{"session", cfg.SessionURL},
				{"game", cfg.GameURL},
			}

			var failed bool
			for _, svc := range services {
				if err := client.Health(svc.url); err != nil {
					out.PrintMessage(fmt.Sprintf("%s: DOWN (%s)", svc.name, err))
					failed = true
				} else {
					out.PrintMessage(fmt.Sprintf("%s: ok", svc.name))
				}
			}

			if failed {
				return fmt.Errorf("one or more services are down")
			}
			return nil
		},
	}
}
