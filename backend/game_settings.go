package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type GameSettings struct {
	Player1Type   PlayerType   `json:"-"`
	Player2Type   PlayerType   `json:"-"`
	Player1Starts bool         `json:"player1_starts"`
	Player1Level  AiDifficulty `json:"player1_level"`
	Player2Level  AiDifficulty `json:"player2_level"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		Player1Type:   PlayerHuman,
		Player2Type:   PlayerAI,
		Player1Starts: true,
		Player1Level:  AiIntermediate,
		Player2Level:  AiIntermediate,
	}
}
