package services

import (
	"math/rand"
	"testing"

	"github.com/scanplay-app/scanplay_api/game"
)

// Track clamps reported points to the catalog MaxPoints, so every seeded cap
// must cover the engine's best attainable playthrough total or honest scores
// get cut.
func TestBuiltinCatalogCapsCoverEngineTotals(t *testing.T) {
	caps := map[string]int{}
	for _, g := range builtinCatalog() {
		caps[g.Code] = g.MaxPoints
	}

	for _, code := range game.Codes() {
		maxPoints, ok := caps[code]
		if !ok {
			t.Fatalf("playable game %q missing from the built-in catalog", code)
		}

		player := game.PlayerFor(code)
		for seed := int64(0); seed < 100; seed++ {
			res := player(rand.New(rand.NewSource(seed)))
			if res.Points > maxPoints {
				t.Fatalf("%s seed %d: playthrough scored %d, catalog cap is %d",
					code, seed, res.Points, maxPoints)
			}
		}
	}
}

func TestBuiltinCatalogDiceCapIsWholePlaythrough(t *testing.T) {
	for _, g := range builtinCatalog() {
		if g.Code != game.CodeDice {
			continue
		}
		if want := game.DiceRolls * game.ScoreDiceRoll(6, 6); g.MaxPoints != want {
			t.Fatalf("dice MaxPoints = %d, want %d", g.MaxPoints, want)
		}
		return
	}
	t.Fatal("dice missing from the built-in catalog")
}
