package game

import (
	"errors"
	"math/rand"
)

// Dice rule table, applied per roll:
// doubles 30, double six 50, sum seven 20, sum eleven 15, otherwise face sum.
// A playthrough is exactly three rolls; the total is the sum of roll scores.
const (
	DiceRolls         = 3
	diceDoublesScore  = 30
	diceDoubleSix     = 50
	diceSumSevenScore = 20
	diceSumElevenS    = 15

	// Per-roll bounds: snake eyes scores its face sum of 2, double six 50.
	DiceRollMin = 2
	DiceRollMax = 50

	// DiceMaxTotal bounds a whole playthrough, not a single roll.
	DiceMaxTotal = DiceRolls * DiceRollMax
)

var ErrNoRollsLeft = errors.New("game: no rolls left")

type DiceGame struct {
	rng      *rand.Rand
	onPoints PointsFunc

	rollsLeft int
	total     int
	rolls     [][2]int
	done      bool
}

func NewDiceGame(rng *rand.Rand, onPoints PointsFunc) *DiceGame {
	return &DiceGame{
		rng:       rng,
		onPoints:  onPoints,
		rollsLeft: DiceRolls,
	}
}

// Roll throws both dice once. After the final roll the game is terminal and
// the points callback fires with the summed total.
func (g *DiceGame) Roll() (d1, d2, score int, err error) {
	if g.rollsLeft == 0 {
		return 0, 0, 0, ErrNoRollsLeft
	}

	d1 = g.rng.Intn(6) + 1
	d2 = g.rng.Intn(6) + 1
	score = ScoreDiceRoll(d1, d2)

	g.rolls = append(g.rolls, [2]int{d1, d2})
	g.total += score
	g.rollsLeft--

	if g.rollsLeft == 0 && !g.done {
		g.done = true
		if g.onPoints != nil {
			g.onPoints(g.total)
		}
	}

	return d1, d2, score, nil
}

func (g *DiceGame) Done() bool {
	return g.done
}

func (g *DiceGame) Total() int {
	return g.total
}

func ScoreDiceRoll(d1, d2 int) int {
	sum := d1 + d2
	switch {
	case d1 == 6 && d2 == 6:
		return diceDoubleSix
	case d1 == d2:
		return diceDoublesScore
	case sum == 7:
		return diceSumSevenScore
	case sum == 11:
		return diceSumElevenS
	default:
		return sum
	}
}

func PlayDice(rng *rand.Rand) Result {
	var points int
	g := NewDiceGame(rng, func(p int) { points = p })

	rolls := make([]map[string]int, 0, DiceRolls)
	for !g.Done() {
		d1, d2, score, err := g.Roll()
		if err != nil {
			break
		}
		rolls = append(rolls, map[string]int{"d1": d1, "d2": d2, "score": score})
	}

	return Result{
		Code:   CodeDice,
		Points: points,
		Detail: map[string]interface{}{"rolls": rolls},
	}
}
