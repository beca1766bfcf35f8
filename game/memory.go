package game

import (
	"errors"
	"math/rand"
)

// Memory-match scoring: each matched pair awards MemoryPairAward; every flip
// beyond the perfect run costs MemoryMovePenalty, floored at zero.
const (
	MemoryPairs       = 6
	MemoryPairAward   = 10
	MemoryMovePenalty = 1
	MemoryMaxScore    = MemoryPairs * MemoryPairAward
)

var (
	ErrGameOver    = errors.New("game: already finished")
	ErrCardFlipped = errors.New("game: card already matched")
	ErrBadCard     = errors.New("game: card index out of range")
)

type MemoryGame struct {
	onPoints PointsFunc

	board   []int // card index -> pair id
	matched []bool
	moves   int
	pairs   int
	done    bool
	score   int
}

func NewMemoryGame(rng *rand.Rand, onPoints PointsFunc) *MemoryGame {
	board := make([]int, MemoryPairs*2)
	for i := range board {
		board[i] = i / 2
	}
	rng.Shuffle(len(board), func(i, j int) {
		board[i], board[j] = board[j], board[i]
	})

	return &MemoryGame{
		onPoints: onPoints,
		board:    board,
		matched:  make([]bool, len(board)),
	}
}

// Flip turns two cards face up. When the last pair matches the game is
// terminal and the callback fires once with the final score.
func (g *MemoryGame) Flip(a, b int) (match bool, err error) {
	if g.done {
		return false, ErrGameOver
	}
	if a < 0 || a >= len(g.board) || b < 0 || b >= len(g.board) || a == b {
		return false, ErrBadCard
	}
	if g.matched[a] || g.matched[b] {
		return false, ErrCardFlipped
	}

	g.moves++
	if g.board[a] != g.board[b] {
		return false, nil
	}

	g.matched[a] = true
	g.matched[b] = true
	g.pairs++

	if g.pairs == MemoryPairs {
		g.done = true
		g.score = g.computeScore()
		if g.onPoints != nil {
			g.onPoints(g.score)
		}
	}
	return true, nil
}

func (g *MemoryGame) computeScore() int {
	score := g.pairs*MemoryPairAward - (g.moves-g.pairs)*MemoryMovePenalty
	if score < 0 {
		score = 0
	}
	return score
}

func (g *MemoryGame) Done() bool {
	return g.done
}

func (g *MemoryGame) Moves() int {
	return g.moves
}

func (g *MemoryGame) Score() int {
	return g.score
}

func PlayMemory(rng *rand.Rand) Result {
	var points int
	g := NewMemoryGame(rng, func(p int) { points = p })

	// Random pair hunting until the board clears.
	for !g.Done() {
		remaining := make([]int, 0, len(g.board))
		for i := range g.board {
			if !g.matched[i] {
				remaining = append(remaining, i)
			}
		}
		a := remaining[rng.Intn(len(remaining))]
		b := remaining[rng.Intn(len(remaining))]
		if a == b {
			continue
		}
		if _, err := g.Flip(a, b); err != nil {
			break
		}
	}

	return Result{
		Code:   CodeMemory,
		Points: points,
		Detail: map[string]interface{}{"moves": g.Moves()},
	}
}
