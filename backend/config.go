package main

import "sync"

type Config struct {
	HintMode bool `json:"hint_mode"`

	// AI move selection
	AiMobilityBase         float64 `json:"ai_mobility_base"`
	AiCenterWeight         float64 `json:"ai_center_weight"`
	AiEdgePenalty          float64 `json:"ai_edge_penalty"`
	AiJitterBeginner       float64 `json:"ai_jitter_beginner"`
	AiJitterIntermediate   float64 `json:"ai_jitter_intermediate"`
	AiJitterExpert         float64 `json:"ai_jitter_expert"`
	AiEarlyGamePieces      int     `json:"ai_early_game_pieces"`
	AiEarlyRandomBonus     float64 `json:"ai_early_random_bonus"`
	AiEarlyMargin          float64 `json:"ai_early_margin"`
	AiLateMargin           float64 `json:"ai_late_margin"`
	AiEarlyPoolSize        int     `json:"ai_early_pool_size"`
	AiLatePoolSize         int     `json:"ai_late_pool_size"`
	AiBeginnerAnchorStride int     `json:"ai_beginner_anchor_stride"`

	// Puzzle generation
	PuzzleMaxAttempts    int    `json:"puzzle_max_attempts"`
	OracleEndpoint       string `json:"oracle_endpoint"`
	OracleTimeoutMs      int    `json:"oracle_timeout_ms"`
	OracleSamplePerPiece int    `json:"oracle_sample_per_piece"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		HintMode: false,

		// Mobility dominates the quiet-move score; the base just keeps
		// scores positive so margins behave.
		AiMobilityBase: 400.0,
		AiCenterWeight: 2.0,
		AiEdgePenalty:  3.0,

		AiJitterBeginner:     30.0,
		AiJitterIntermediate: 8.0,
		AiJitterExpert:       1.5,

		AiEarlyGamePieces:  4,
		AiEarlyRandomBonus: 25.0,
		AiEarlyMargin:      40.0,
		AiLateMargin:       2.0,
		AiEarlyPoolSize:    3,
		AiLatePoolSize:     2,

		// Beginner samples every other anchor when counting opponent
		// replies; intermediate and expert count exactly.
		AiBeginnerAnchorStride: 2,

		PuzzleMaxAttempts:    8,
		OracleEndpoint:       "",
		OracleTimeoutMs:      2500,
		OracleSamplePerPiece: 4,
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}
