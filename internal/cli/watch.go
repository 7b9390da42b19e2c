package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/wordduel/wordduel/internal/model"
)

func newWatchCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch <roomId>",
		Short: "Subscribe to a game's live updates",
		Long: `Connect to the game authority's observer channel and print every
update pushed for the room: the masked word, the attempt budget, whose turn
it is, and the winner once the duel ends.

Only updates pushed after subscribing are delivered; fetch the current
snapshot with 'wordduel game <roomId>' first.

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchRoom(args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output updates as JSON lines")

	return cmd
}

func watchRoom(roomID string, jsonOutput bool) error {
	wsURL := strings.TrimSuffix(cfg.GameURL, "/") + "/ws"
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()
	if resp != nil {
		_ = resp.Body.Close()
	}

	if err := conn.WriteJSON(map[string]string{
		"type":   "SUBSCRIBE",
		"roomId": roomID,
	}); err != nil {
		return fmt.Errorf("subscribe failed: %w", err)
	}

	if !jsonOutput {
		fmt.Printf("Watching room %s\n", roomID)
	}

	// Close the connection on interrupt; the read loop unblocks with an error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	interrupted := make(chan struct{})
	go func() {
		<-sigCh
		close(interrupted)
		_ = conn.Close()
	}()

	for {
		var update model.GameUpdate
		if err := conn.ReadJSON(&update); err != nil {
			select {
			case <-interrupted:
				if !jsonOutput {
					fmt.Println("\nDisconnected")
				}
				return nil
			default:
				return fmt.Errorf("stream error: %w", err)
			}
		}

		printUpdate(update, jsonOutput)

		if update.Status == model.RoomStatusFinished {
			if !jsonOutput {
				fmt.Println("Duel finished")
			}
			return nil
		}
	}
}

func printUpdate(update model.GameUpdate, jsonOutput bool) {
	if jsonOutput {
		data, _ := json.Marshal(update)
		fmt.Println(string(data))
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	if update.WinnerUserID != "" {
		fmt.Printf("[%s] %s  winner: %s\n", timestamp, spaced(update.MaskedWord), update.WinnerUserID)
	} else {
		fmt.Printf("[%s] %s  attempts: %d  turn: %s\n",
			timestamp, spaced(update.MaskedWord), update.RemainingAttempts, update.CurrentTurnUserID)
	}
}
