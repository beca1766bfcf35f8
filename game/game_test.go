package game

import (
	"math/rand"
	"testing"
)

func TestMemoryGameCallbackOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	calls := 0
	var reported int
	g := NewMemoryGame(rng, func(p int) {
		calls++
		reported = p
	})

	// Cheat by reading the board: flip each pair directly, a perfect run.
	positions := make(map[int][]int)
	for i, pair := range g.board {
		positions[pair] = append(positions[pair], i)
	}
	for _, cards := range positions {
		match, err := g.Flip(cards[0], cards[1])
		if err != nil {
			t.Fatalf("flip error: %v", err)
		}
		if !match {
			t.Fatalf("pair at %v did not match", cards)
		}
	}

	if !g.Done() {
		t.Fatal("game not terminal after all pairs matched")
	}
	if calls != 1 {
		t.Fatalf("points callback fired %d times, want 1", calls)
	}
	if reported != MemoryMaxScore {
		t.Fatalf("perfect run scored %d, want %d", reported, MemoryMaxScore)
	}

	if _, err := g.Flip(0, 1); err != ErrGameOver {
		t.Fatalf("flip after terminal state: err = %v, want ErrGameOver", err)
	}
}

func TestMemoryGameScoreFloor(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		res := PlayMemory(rand.New(rand.NewSource(seed)))
		if res.Points < 0 || res.Points > MemoryMaxScore {
			t.Fatalf("seed %d: points %d outside [0,%d]", seed, res.Points, MemoryMaxScore)
		}
	}
}

func TestQuickTapGame(t *testing.T) {
	calls := 0
	var reported int
	g := NewQuickTapGame(func(p int) {
		calls++
		reported = p
	})

	for i := 0; i < 5; i++ {
		g.Tap()
	}
	for !g.Done() {
		g.Tick()
	}

	if calls != 1 {
		t.Fatalf("points callback fired %d times, want 1", calls)
	}
	if want := 5 * QuickTapPointsPerTap; reported != want {
		t.Fatalf("score = %d, want %d", reported, want)
	}

	// Neither late taps nor extra ticks may re-fire the callback.
	g.Tap()
	g.Tick()
	if calls != 1 {
		t.Fatalf("callback re-fired after terminal state, calls = %d", calls)
	}
}

func TestQuickTapScoreCap(t *testing.T) {
	var reported int
	g := NewQuickTapGame(func(p int) { reported = p })

	for i := 0; i < 1000; i++ {
		g.Tap()
	}
	for !g.Done() {
		g.Tick()
	}

	if reported != QuickTapMaxScore {
		t.Fatalf("score = %d, want cap %d", reported, QuickTapMaxScore)
	}
}

func TestSpinWheelSingleSpin(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		calls := 0
		var reported int
		g := NewSpinWheelGame(rand.New(rand.NewSource(seed)), func(p int) {
			calls++
			reported = p
		})

		label, points, err := g.Spin()
		if err != nil {
			t.Fatalf("spin error: %v", err)
		}
		if label == "" {
			t.Fatal("spin landed on no segment")
		}
		if points != reported || calls != 1 {
			t.Fatalf("callback calls = %d reported = %d, spin returned %d", calls, reported, points)
		}
		if points < SpinWheelMinScore || points > SpinWheelMaxScore {
			t.Fatalf("seed %d: points %d outside [%d,%d]", seed, points, SpinWheelMinScore, SpinWheelMaxScore)
		}

		if _, _, err := g.Spin(); err != ErrAlreadySpun {
			t.Fatalf("second spin: err = %v, want ErrAlreadySpun", err)
		}
	}
}

func TestRouteForCode(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{code: "spin-win", want: "spin-wheel"},
		{code: "dice", want: "dice-roll"},
		{code: "memory", want: "memory-match"},
		{code: "tap", want: "quick-tap"},
		// Unknown codes pass through unchanged.
		{code: "mystery-box", want: "mystery-box"},
		{code: "", want: ""},
	}

	for _, tt := range tests {
		if got := RouteForCode(tt.code); got != tt.want {
			t.Fatalf("RouteForCode(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestPlayerForEveryCode(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, code := range Codes() {
		player := PlayerFor(code)
		if player == nil {
			t.Fatalf("no player registered for %q", code)
		}
		res := player(rng)
		if res.Code != code {
			t.Fatalf("player for %q returned code %q", code, res.Code)
		}
		if res.Points < 0 {
			t.Fatalf("player for %q returned negative points %d", code, res.Points)
		}
	}

	if PlayerFor("not-a-game") != nil {
		t.Fatal("expected nil player for unknown code")
	}
}
