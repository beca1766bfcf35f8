package game

import (
	"errors"
	"math/rand"
)

// Spin & Win wheel: a single weighted spin. Common low prizes, rare jackpot.
type wheelSegment struct {
	Label  string
	Points int
	Weight int
}

var wheelSegments = []wheelSegment{
	{Label: "5 points", Points: 5, Weight: 30},
	{Label: "10 points", Points: 10, Weight: 25},
	{Label: "20 points", Points: 20, Weight: 20},
	{Label: "30 points", Points: 30, Weight: 14},
	{Label: "50 points", Points: 50, Weight: 8},
	{Label: "Jackpot", Points: 100, Weight: 3},
}

const (
	SpinWheelMinScore = 5
	SpinWheelMaxScore = 100
)

var ErrAlreadySpun = errors.New("game: wheel already spun")

type SpinWheelGame struct {
	rng      *rand.Rand
	onPoints PointsFunc

	done  bool
	score int
	label string
}

func NewSpinWheelGame(rng *rand.Rand, onPoints PointsFunc) *SpinWheelGame {
	return &SpinWheelGame{rng: rng, onPoints: onPoints}
}

// Spin is the whole game: one weighted draw, then terminal.
func (g *SpinWheelGame) Spin() (label string, points int, err error) {
	if g.done {
		return "", 0, ErrAlreadySpun
	}

	totalWeight := 0
	for _, seg := range wheelSegments {
		totalWeight += seg.Weight
	}

	pick := g.rng.Intn(totalWeight)
	for _, seg := range wheelSegments {
		pick -= seg.Weight
		if pick < 0 {
			g.label = seg.Label
			g.score = seg.Points
			break
		}
	}

	g.done = true
	if g.onPoints != nil {
		g.onPoints(g.score)
	}
	return g.label, g.score, nil
}

func (g *SpinWheelGame) Done() bool {
	return g.done
}

func PlaySpinWheel(rng *rand.Rand) Result {
	var points int
	g := NewSpinWheelGame(rng, func(p int) { points = p })

	label, _, _ := g.Spin()
	return Result{
		Code:   CodeSpinWheel,
		Points: points,
		Detail: map[string]interface{}{"segment": label},
	}
}
