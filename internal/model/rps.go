package model

// RPSChoice is one of the three rock-paper-scissors symbols
type RPSChoice string

const (
	Rock     RPSChoice = "rock"
	Paper    RPSChoice = "paper"
	Scissors RPSChoice = "scissors"
)

// RPSChoices lists the symbols in draw order
var RPSChoices = []RPSChoice{Rock, Paper, Scissors}

// ParseRPSChoice validates a choice string
func ParseRPSChoice(s string) (RPSChoice, bool) {
	switch RPSChoice(s) {
	case Rock, Paper, Scissors:
		return RPSChoice(s), true
	}
	return "", false
}

// Beats reports whether c wins against other under the fixed cyclic rule:
// rock beats scissors, scissors beats paper, paper beats rock.
func (c RPSChoice) Beats(other RPSChoice) bool {
	return (c == Rock && other == Scissors) ||
		(c == Scissors && other == Paper) ||
		(c == Paper && other == Rock)
}
