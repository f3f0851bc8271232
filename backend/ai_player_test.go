package main

import (
	"testing"
	"time"
)

func waitForMove(t *testing.T, ai *AIPlayer) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !ai.HasMoveReady() {
		if time.Now().After(deadline) {
			t.Fatalf("AI produced no move in time")
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestAIPlayerBackgroundThinking(t *testing.T) {
	ai := NewAIPlayer(AiIntermediate)
	state := DefaultGameState(twoHumanSettings())
	state.Status = StatusRunning

	ai.StartThinking(state)
	waitForMove(t, ai)
	move, ok := ai.TakeMove()
	if !ok {
		t.Fatalf("no move on an empty board")
	}
	if legal, reason := NewRules().IsLegal(state.Board, move); !legal {
		t.Fatalf("AI produced an illegal move %+v: %s", move, reason)
	}
	if ai.HasMoveReady() {
		t.Fatalf("move still flagged ready after TakeMove")
	}
}

func TestAIPlayerChooseMoveOnDeadPosition(t *testing.T) {
	ai := NewAIPlayer(AiExpert)
	state := DefaultGameState(twoHumanSettings())
	fillBoard(&state.Board)
	state.Used = fullPieceSet()
	if _, ok := ai.ChooseMove(state); ok {
		t.Fatalf("expected no move on a dead position")
	}
}

func TestAIPlayerRestartsAfterStop(t *testing.T) {
	ai := NewAIPlayer(AiBeginner)
	state := DefaultGameState(twoHumanSettings())
	state.Status = StatusRunning

	ai.StartThinking(state)
	ai.StopThinking()
	deadline := time.Now().Add(5 * time.Second)
	for ai.IsThinking() {
		if time.Now().After(deadline) {
			t.Fatalf("worker did not settle after stop")
		}
		time.Sleep(2 * time.Millisecond)
	}

	ai.StartThinking(state)
	waitForMove(t, ai)
	if _, ok := ai.TakeMove(); !ok {
		t.Fatalf("no move after restart")
	}
}
