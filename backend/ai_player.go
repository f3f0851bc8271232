package main

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// AIPlayer runs move selection on a worker goroutine against a cloned
// snapshot, so the session state is never shared with the search.
type AIPlayer struct {
	level      AiDifficulty
	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	stopSignal atomic.Bool
	readyMove  Placement
	readyOk    bool
	rng        *rand.Rand
}

func NewAIPlayer(level AiDifficulty) *AIPlayer {
	return &AIPlayer{
		level: level,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

func (a *AIPlayer) Level() AiDifficulty {
	return a.level
}

// ChooseMove selects synchronously. Used by AI-vs-AI drivers and
// tests; the tick loop prefers StartThinking.
func (a *AIPlayer) ChooseMove(state GameState) (Placement, bool) {
	return SelectMove(state.Board, state.Used, state.ToMove, a.level, a.rng)
}

func (a *AIPlayer) StartThinking(state GameState) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)
	a.stopSignal.Store(false)

	stateCopy := state.Clone()
	done := make(chan struct{})
	a.workerDone = done
	go func() {
		defer close(done)
		move, ok := SelectMove(stateCopy.Board, stateCopy.Used, stateCopy.ToMove, a.level, a.rng)
		if a.stopSignal.Load() {
			a.moveReady.Store(false)
			a.thinking.Store(false)
			return
		}
		a.moveMutex.Lock()
		a.readyMove = move
		a.readyOk = ok
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() (Placement, bool) {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyMove, a.readyOk
}

func (a *AIPlayer) StopThinking() {
	a.stopSignal.Store(true)
	a.moveReady.Store(false)
}
