package game

import "math/rand"

// Quick-tap: tap as often as possible before the countdown runs out. The
// clock advances in discrete ticks so playthroughs are reproducible; points
// are taps times QuickTapPointsPerTap, capped at QuickTapMaxScore.
const (
	QuickTapTicks        = 10
	QuickTapPointsPerTap = 2
	QuickTapMaxScore     = 60
)

type QuickTapGame struct {
	onPoints PointsFunc

	ticksLeft int
	taps      int
	done      bool
	score     int
}

func NewQuickTapGame(onPoints PointsFunc) *QuickTapGame {
	return &QuickTapGame{
		onPoints:  onPoints,
		ticksLeft: QuickTapTicks,
	}
}

// Tap registers a hit. Taps after the timer expired are ignored.
func (g *QuickTapGame) Tap() {
	if g.done {
		return
	}
	g.taps++
}

// Tick advances the countdown. At zero the game is terminal and the callback
// fires once.
func (g *QuickTapGame) Tick() {
	if g.done {
		return
	}

	g.ticksLeft--
	if g.ticksLeft > 0 {
		return
	}

	g.done = true
	g.score = g.taps * QuickTapPointsPerTap
	if g.score > QuickTapMaxScore {
		g.score = QuickTapMaxScore
	}
	if g.onPoints != nil {
		g.onPoints(g.score)
	}
}

func (g *QuickTapGame) Done() bool {
	return g.done
}

func (g *QuickTapGame) Score() int {
	return g.score
}

func PlayQuickTap(rng *rand.Rand) Result {
	var points int
	g := NewQuickTapGame(func(p int) { points = p })

	taps := 0
	for !g.Done() {
		// A handful of taps per tick, like a human mashing the button.
		n := rng.Intn(4)
		for i := 0; i < n; i++ {
			g.Tap()
		}
		taps += n
		g.Tick()
	}

	return Result{
		Code:   CodeQuickTap,
		Points: points,
		Detail: map[string]interface{}{"taps": taps},
	}
}
