package models

type GameStatus string

const (
	StatusPlaying GameStatus = "playing"
	StatusWon     GameStatus = "won"
	StatusLost    GameStatus = "lost"
)

type PolicyName string

const (
	PolicyTrapPosition PolicyName = "trap"
	PolicyDicePair     PolicyName = "dice"
	PolicySafePath     PolicyName = "safepath"
)

// StepOutcome is the precomputed hazard for one step. Which fields are
// meaningful depends on the policy that derived the sequence.
type StepOutcome struct {
	TrapIndex int `json:"trap_index,omitempty"`
	Dice1     int `json:"dice1,omitempty"`
	Dice2     int `json:"dice2,omitempty"`
	SafeIndex int `json:"safe_index,omitempty"`
}

// OutcomeSequence holds every step outcome for a round, derived once at
// round creation from (server seed, client seed, nonce).
type OutcomeSequence struct {
	Policy    PolicyName    `json:"policy"`
	CellCount int           `json:"cell_count"`
	Steps     []StepOutcome `json:"steps"`

	// MaxStep is the ceiling for the dice and safepath policies: steps at
	// index >= MaxStep are unreachable. For the trap policy it equals
	// len(Steps).
	MaxStep int `json:"max_step"`
}

type GameSession struct {
	ID             string     `json:"id"`
	PlayerID       string     `json:"player_id"`
	ServerSeedHash string     `json:"server_seed_hash"`
	ClientSeed     string     `json:"client_seed"`
	Nonce          int64      `json:"nonce"`
	CellCount      int        `json:"cell_count"`
	Bet            float64    `json:"bet"`
	StepsCompleted int        `json:"steps_completed"`
	Multiplier     float64    `json:"multiplier"`
	PotentialWin   float64    `json:"potential_win"`
	Status         GameStatus `json:"status"`
	CreatedAt      int64      `json:"created_at"`

	// Hidden from JSON while the round is playing; handlers expose the
	// sequence only once the session is terminal.
	Outcomes *OutcomeSequence `json:"-"`
}

func (s *GameSession) Terminal() bool {
	return s.Status == StatusWon || s.Status == StatusLost
}

// HistoryEntry records one terminated round for player review.
type HistoryEntry struct {
	ID         string     `json:"id"`
	Bet        float64    `json:"bet"`
	Result     GameStatus `json:"result"`
	Multiplier float64    `json:"multiplier"`
	Payout     float64    `json:"payout"`
	Steps      int        `json:"steps"`
	Timestamp  int64      `json:"timestamp"`
}
