package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/wordduel/wordduel/internal/api/response"
	"github.com/wordduel/wordduel/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Identity:
		o.printIdentity(v)
	case response.Room:
		o.printRoom(v)
	case response.Game:
		o.printGame(v)
	case model.GameUpdate:
		o.printUpdate(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printIdentity(id response.Identity) {
	fmt.Printf("User: %s (%s)\n", id.Username, id.UserID)
}

func (o *Output) printRoom(r response.Room) {
	fmt.Printf("Room: %s\n", r.RoomID)
	fmt.Printf("Status: %s\n", r.Status)
	fmt.Printf("Players: %s\n", strings.Join(r.Players, ", "))
	if r.CurrentTurnUserID != "" {
		fmt.Printf("Turn: %s\n", r.CurrentTurnUserID)
	}
	fmt.Printf("Attempts left: %d\n", r.RemainingAttempts)
}

func (o *Output) printGame(g response.Game) {
	fmt.Printf("Room: %s\n", g.RoomID)
	fmt.Printf("Word: %s\n", spaced(g.MaskedWord))
	if len(g.GuessedLetters) > 0 {
		fmt.Printf("Guessed: %s\n", strings.Join(g.GuessedLetters, " "))
	}
	fmt.Printf("Attempts left: %d\n", g.RemainingAttempts)
	if g.WinnerUserID != "" {
		fmt.Printf("Winner: %s\n", g.WinnerUserID)
	} else if g.Status == string(model.RoomStatusFinished) {
		fmt.Println("Game over: the word was never found")
	} else {
		fmt.Printf("Turn: %s\n", g.CurrentTurnUserID)
	}
}

func (o *Output) printUpdate(u model.GameUpdate) {
	fmt.Printf("Word: %s\n", spaced(u.MaskedWord))
	fmt.Printf("Attempts left: %d\n", u.RemainingAttempts)
	if u.WinnerUserID != "" {
		fmt.Printf("Winner: %s\n", u.WinnerUserID)
	} else if u.Status == model.RoomStatusFinished {
		fmt.Println("Game over: the word was never found")
	} else {
		fmt.Printf("Turn: %s\n", u.CurrentTurnUserID)
	}
}

// spaced renders "M__G_" as "M _ _ G _" for readability
func spaced(masked string) string {
	letters := make([]string, 0, len(masked))
	for _, r := range masked {
		letters = append(letters, string(r))
	}
	return strings.Join(letters, " ")
}
