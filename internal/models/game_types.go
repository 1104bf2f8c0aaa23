package models

type StartGameRequest struct {
	Bet        float64 `json:"bet" binding:"required"`
	CellCount  int     `json:"cell_count" binding:"required"`
	ClientSeed string  `json:"client_seed"`
}

type StepRequest struct {
	GameID string `json:"game_id" binding:"required"`

	// CellIndex is only consulted by the trap policy, where the player
	// picks a cell per row. Pointer so that cell 0 is distinguishable
	// from "not sent".
	CellIndex *int `json:"cell_index"`
}

type CashoutRequest struct {
	GameID string `json:"game_id" binding:"required"`
}

type VerifyRequest struct {
	ServerSeed     string           `json:"server_seed" binding:"required"`
	ServerSeedHash string           `json:"server_seed_hash" binding:"required"`
	ClientSeed     string           `json:"client_seed" binding:"required"`
	Nonce          int64            `json:"nonce" binding:"required"`
	CellCount      int              `json:"cell_count" binding:"required"`
	Outcomes       *OutcomeSequence `json:"outcomes" binding:"required"`
}

// StepResult is the outcome of attempting one step.
type StepResult struct {
	Success      bool        `json:"success"`
	Outcome      StepOutcome `json:"outcome"`
	Multiplier   float64     `json:"multiplier"`
	PotentialWin float64     `json:"potential_win"`
	Status       GameStatus  `json:"status"`
}

type CashoutResult struct {
	Success         bool    `json:"success"`
	Amount          float64 `json:"amount"`
	FinalMultiplier float64 `json:"final_multiplier"`
	Balance         float64 `json:"balance"`
}

// VerificationData reveals the server seed after a round is terminal so
// anyone can recompute the outcome sequence independently.
type VerificationData struct {
	ServerSeed     string           `json:"server_seed"`
	ServerSeedHash string           `json:"server_seed_hash"`
	ClientSeed     string           `json:"client_seed"`
	Nonce          int64            `json:"nonce"`
	CellCount      int              `json:"cell_count"`
	Outcomes       *OutcomeSequence `json:"outcomes"`
	IsValid        bool             `json:"is_valid"`
}
