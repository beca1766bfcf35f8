package game

import (
	"math/rand"
	"testing"
)

func TestScoreDiceRoll(t *testing.T) {
	tests := []struct {
		name   string
		d1, d2 int
		want   int
	}{
		{name: "double six", d1: 6, d2: 6, want: 50},
		{name: "doubles", d1: 3, d2: 3, want: 30},
		{name: "snake eyes are doubles", d1: 1, d2: 1, want: 30},
		{name: "sum seven", d1: 3, d2: 4, want: 20},
		{name: "sum eleven", d1: 5, d2: 6, want: 15},
		{name: "plain sum", d1: 2, d2: 3, want: 5},
		{name: "plain sum high", d1: 4, d2: 6, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreDiceRoll(tt.d1, tt.d2); got != tt.want {
				t.Fatalf("ScoreDiceRoll(%d,%d) = %d, want %d", tt.d1, tt.d2, got, tt.want)
			}
		})
	}
}

func TestDicePlaythroughTotalsBoundedByMaxTotal(t *testing.T) {
	if DiceMaxTotal != DiceRolls*ScoreDiceRoll(6, 6) {
		t.Fatalf("DiceMaxTotal = %d, want %d", DiceMaxTotal, DiceRolls*ScoreDiceRoll(6, 6))
	}

	// A run of double sixes was previously scored against the per-roll
	// bound; a playthrough is three rolls and must cap at the sum.
	sawAboveSingleRoll := false
	for seed := int64(0); seed < 200; seed++ {
		res := PlayDice(rand.New(rand.NewSource(seed)))
		if res.Points > DiceMaxTotal {
			t.Fatalf("seed %d: total %d exceeds DiceMaxTotal %d", seed, res.Points, DiceMaxTotal)
		}
		if res.Points > DiceRollMax {
			sawAboveSingleRoll = true
		}
	}
	if !sawAboveSingleRoll {
		t.Fatal("no playthrough scored above a single-roll maximum; bound check proves nothing")
	}
}

func TestDiceGameCallbackOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	calls := 0
	var reported int
	g := NewDiceGame(rng, func(p int) {
		calls++
		reported = p
	})

	rolls := 0
	for !g.Done() {
		if _, _, _, err := g.Roll(); err != nil {
			t.Fatalf("unexpected roll error: %v", err)
		}
		rolls++
	}

	if rolls != DiceRolls {
		t.Fatalf("rolls = %d, want %d", rolls, DiceRolls)
	}
	if calls != 1 {
		t.Fatalf("points callback fired %d times, want 1", calls)
	}
	if reported != g.Total() {
		t.Fatalf("callback reported %d, total is %d", reported, g.Total())
	}
	if reported < DiceRolls*DiceRollMin || reported > DiceRolls*DiceRollMax {
		t.Fatalf("total %d outside attainable range [%d,%d]",
			reported, DiceRolls*DiceRollMin, DiceRolls*DiceRollMax)
	}

	if _, _, _, err := g.Roll(); err != ErrNoRollsLeft {
		t.Fatalf("roll after terminal state: err = %v, want ErrNoRollsLeft", err)
	}
}

func TestDiceRollScoreBounds(t *testing.T) {
	// Per-roll score must stay inside the documented [2,50] band for every
	// face combination.
	for d1 := 1; d1 <= 6; d1++ {
		for d2 := 1; d2 <= 6; d2++ {
			score := ScoreDiceRoll(d1, d2)
			if score < DiceRollMin || score > DiceRollMax {
				t.Fatalf("ScoreDiceRoll(%d,%d) = %d outside [%d,%d]",
					d1, d2, score, DiceRollMin, DiceRollMax)
			}
		}
	}
}

func TestPlayDice(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		res := PlayDice(rand.New(rand.NewSource(seed)))
		if res.Code != CodeDice {
			t.Fatalf("code = %q, want %q", res.Code, CodeDice)
		}
		if res.Points < DiceRolls*DiceRollMin || res.Points > DiceRolls*DiceRollMax {
			t.Fatalf("seed %d: points %d outside attainable range", seed, res.Points)
		}
	}
}
