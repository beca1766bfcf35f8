// Package game holds the mini-game scoring engines. Every engine is a small
// state machine with the same completion contract: the points callback fires
// exactly once, when the game reaches its terminal state, with a non-negative
// integer inside the engine's rule-table range.
package game

import "math/rand"

// PointsFunc receives the final score of a playthrough.
type PointsFunc func(points int)

// Result is the outcome of a driven playthrough.
type Result struct {
	Code   string                 `json:"code"`
	Points int                    `json:"points"`
	Detail map[string]interface{} `json:"detail,omitempty"`
}

// Player runs a full playthrough of an engine with random moves. Used by the
// server-side play endpoint; interactive clients drive the machines directly.
type Player func(rng *rand.Rand) Result

var players = map[string]Player{
	CodeDice:      PlayDice,
	CodeMemory:    PlayMemory,
	CodeQuickTap:  PlayQuickTap,
	CodeSpinWheel: PlaySpinWheel,
}

const (
	CodeDice      = "dice-roll"
	CodeMemory    = "memory-match"
	CodeQuickTap  = "quick-tap"
	CodeSpinWheel = "spin-win"
)

// PlayerFor returns the auto-player for a backend game code, nil if none.
func PlayerFor(code string) Player {
	return players[code]
}

// Codes lists every playable backend game code.
func Codes() []string {
	codes := make([]string, 0, len(players))
	for code := range players {
		codes = append(codes, code)
	}
	return codes
}
