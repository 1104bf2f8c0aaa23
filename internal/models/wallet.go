package models

type Wallet struct {
	PlayerID     string  `json:"player_id"`
	Balance      float64 `json:"balance"`
	TotalWagered float64 `json:"total_wagered"`
	TotalWon     float64 `json:"total_won"`
}

type BalanceResponse struct {
	Balance      float64 `json:"balance"`
	TotalWagered float64 `json:"total_wagered"`
	TotalWon     float64 `json:"total_won"`
}
