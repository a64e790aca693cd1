package cli

import (
	"encoding/json"
	"fmt"
	"os"
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
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	Rank                    int64   `json:"rank,omitempty"`
	Username                string  `json:"username"`
	DisplayName             string  `json:"displayName"`
	Score                   int64   `json:"score"`
	Attempts                int64   `json:"attempts"`
	Rounds                  int64   `json:"rounds"`
	AverageAttemptsPerRound float64 `json:"averageAttemptsPerRound"`
	ClaimedBonusPoints      int64   `json:"claimedBonusPoints"`
}

// AuthResult combines user and token
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// DuelResult holds both sides of a finished duel round
type DuelResult struct {
	User     User `json:"user"`
	Opponent User `json:"opponent"`
}

// ListMetadata matches the list endpoints' metadata block
type ListMetadata struct {
	TotalUsers    int64           `json:"totalUsers"`
	ReturnedUsers int             `json:"returnedUsers"`
	Pagination    *PaginationInfo `json:"pagination"`
}

// PaginationInfo matches the pagination metadata block
type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
}

// Leaderboard combines list entries with their metadata
type Leaderboard struct {
	Users    []User       `json:"users"`
	Metadata ListMetadata `json:"metadata"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	if u.Rank > 0 {
		fmt.Printf("Rank: #%d\n", u.Rank)
	}
	fmt.Printf("Username: %s\n", u.Username)
	fmt.Printf("Display Name: %s\n", u.DisplayName)
	fmt.Printf("Score: %d\n", u.Score)
	fmt.Printf("Attempts: %d\n", u.Attempts)
	fmt.Printf("Rounds: %d\n", u.Rounds)
	fmt.Printf("Avg Attempts/Round: %.2f\n", u.AverageAttemptsPerRound)
	fmt.Printf("Claimed Bonus Points: %d\n", u.ClaimedBonusPoints)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Users (%d of %d):\n", l.Metadata.ReturnedUsers, l.Metadata.TotalUsers)
	for _, u := range l.Users {
		if u.Rank > 0 {
			fmt.Printf("  #%d %s (%s) - %d points, %d attempts, %d rounds\n",
				u.Rank, u.Username, u.DisplayName, u.Score, u.Attempts, u.Rounds)
		} else {
			fmt.Printf("  %s (%s) - %d points, %d attempts, %d rounds\n",
				u.Username, u.DisplayName, u.Score, u.Attempts, u.Rounds)
		}
	}
	if p := l.Metadata.Pagination; p != nil {
		fmt.Printf("Page %d of %d (limit %d, %d total)\n", p.Page, p.TotalPages, p.Limit, p.TotalItems)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
