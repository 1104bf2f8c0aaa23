package services

import (
	"context"
	"sync"
	"time"

	"steprush-backend/internal/config"
	"steprush-backend/internal/models"
)

// Broadcaster pushes round events to connected clients. Implemented by
// the websocket hub; the engine works fine without one.
type Broadcaster interface {
	SendToPlayer(playerID string, eventType string, data interface{})
}

type sessionEntry struct {
	session    *models.GameSession
	serverSeed string
}

// GameEngine owns every in-flight round: it creates the commit-reveal
// seed material, walks sessions through playing -> won|lost, and keeps
// the per-player wallet and history bookkeeping consistent. A single
// mutex serializes all transitions, so a step or cashout always sees a
// consistent session snapshot.
type GameEngine struct {
	mu          sync.Mutex
	cfg         config.GameConfig
	policy      OutcomePolicy
	multipliers *MultiplierModel
	wallets     *WalletService

	sessions    map[string]*sessionEntry
	activeRound map[string]string // playerID -> playing session ID
	history     map[string][]models.HistoryEntry

	broadcaster Broadcaster
}

func NewGameEngine(cfg config.GameConfig, policy OutcomePolicy, wallets *WalletService) *GameEngine {
	return &GameEngine{
		cfg:         cfg,
		policy:      policy,
		multipliers: NewMultiplierModel(cfg.HouseEdge),
		wallets:     wallets,
		sessions:    make(map[string]*sessionEntry),
		activeRound: make(map[string]string),
		history:     make(map[string][]models.HistoryEntry),
	}
}

func (ge *GameEngine) SetBroadcaster(b Broadcaster) {
	ge.broadcaster = b
}

func (ge *GameEngine) Policy() models.PolicyName {
	return ge.policy.Name()
}

func (ge *GameEngine) Multipliers() *MultiplierModel {
	return ge.multipliers
}

func (ge *GameEngine) Config() config.GameConfig {
	return ge.cfg
}

// StartGame opens a new round: commits to a fresh server seed, derives
// the complete outcome sequence up front and debits the stake. At most
// one playing round is allowed per player.
func (ge *GameEngine) StartGame(ctx context.Context, playerID string, req *models.StartGameRequest) (*models.GameSession, error) {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	if req.CellCount < ge.cfg.MinCells || req.CellCount > ge.cfg.MaxCells {
		return nil, ErrInvalidCellCount
	}
	if req.Bet <= 0 || req.Bet < ge.cfg.MinBet || req.Bet > ge.cfg.MaxBet {
		return nil, ErrInvalidBet
	}
	if _, busy := ge.activeRound[playerID]; busy {
		return nil, ErrActiveRound
	}

	commitment, err := NewCommitment()
	if err != nil {
		return nil, err
	}

	clientSeed := req.ClientSeed
	if clientSeed == "" {
		clientSeed, err = GenerateClientSeed()
		if err != nil {
			return nil, err
		}
	}

	// Uniqueness is all the nonce provides; it is public from the start.
	nonce := time.Now().UnixMilli()

	outcomes, err := ge.policy.Derive(commitment.ServerSeed, clientSeed, nonce, req.CellCount, ge.cfg.MaxSteps)
	if err != nil {
		return nil, err
	}

	if err := ge.wallets.Debit(playerID, req.Bet); err != nil {
		return nil, err
	}

	session := &models.GameSession{
		ID:             models.GenerateGameID(),
		PlayerID:       playerID,
		ServerSeedHash: commitment.ServerSeedHash,
		ClientSeed:     clientSeed,
		Nonce:          nonce,
		CellCount:      req.CellCount,
		Bet:            req.Bet,
		StepsCompleted: 0,
		Multiplier:     1,
		PotentialWin:   req.Bet,
		Status:         models.StatusPlaying,
		CreatedAt:      time.Now().UnixMilli(),
		Outcomes:       outcomes,
	}

	ge.sessions[session.ID] = &sessionEntry{
		session:    session,
		serverSeed: commitment.ServerSeed,
	}
	ge.activeRound[playerID] = session.ID

	return session, nil
}

// MakeStep resolves the next step of a playing round against the
// precomputed outcome sequence. The step index is always the number of
// steps completed so far, so replayed or skipped requests are rejected
// by construction.
func (ge *GameEngine) MakeStep(ctx context.Context, playerID, sessionID string, cellIndex *int) (*models.StepResult, error) {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	entry, err := ge.lookup(playerID, sessionID)
	if err != nil {
		return nil, err
	}
	session := entry.session

	if session.Status != models.StatusPlaying {
		return nil, ErrNotPlaying
	}

	// Losing at the ceiling step ends the round, so a playing session can
	// never sit past it; only the sequence length needs guarding here.
	stepIndex := session.StepsCompleted
	if stepIndex >= len(session.Outcomes.Steps) {
		return nil, ErrMaxStepsReached
	}

	chosenCell := 0
	if session.Outcomes.Policy == models.PolicyTrapPosition {
		if cellIndex == nil {
			return nil, ErrCellRequired
		}
		if *cellIndex < 0 || *cellIndex >= session.CellCount {
			return nil, ErrInvalidCell
		}
		chosenCell = *cellIndex
	}

	outcome := session.Outcomes.Steps[stepIndex]
	safe := StepIsSafe(session.Outcomes, stepIndex, chosenCell)

	if safe {
		session.StepsCompleted++
		session.Multiplier = ge.multipliers.Multiplier(session.CellCount, session.StepsCompleted)
		session.PotentialWin = PotentialWin(session.Bet, session.Multiplier)
	} else {
		session.Status = models.StatusLost
		delete(ge.activeRound, playerID)
		ge.appendHistory(playerID, models.HistoryEntry{
			ID:         models.GenerateHistoryID(),
			Bet:        session.Bet,
			Result:     models.StatusLost,
			Multiplier: session.Multiplier,
			Payout:     0,
			Steps:      session.StepsCompleted,
			Timestamp:  time.Now().UnixMilli(),
		})
	}

	result := &models.StepResult{
		Success:      safe,
		Outcome:      outcome,
		Multiplier:   session.Multiplier,
		PotentialWin: session.PotentialWin,
		Status:       session.Status,
	}

	if ge.broadcaster != nil {
		if safe {
			ge.broadcaster.SendToPlayer(playerID, "step_result", result)
		} else {
			ge.broadcaster.SendToPlayer(playerID, "game_over", result)
		}
	}

	return result, nil
}

// Cashout settles a playing round at the current multiplier. A round
// with zero completed steps has nothing to cash out.
func (ge *GameEngine) Cashout(ctx context.Context, playerID, sessionID string) (*models.CashoutResult, error) {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	entry, err := ge.lookup(playerID, sessionID)
	if err != nil {
		return nil, err
	}
	session := entry.session

	if session.Status != models.StatusPlaying {
		return nil, ErrNotPlaying
	}
	if session.StepsCompleted == 0 {
		return nil, ErrNoStepsTaken
	}

	amount := PotentialWin(session.Bet, session.Multiplier)
	session.Status = models.StatusWon
	delete(ge.activeRound, playerID)

	ge.wallets.Credit(playerID, amount)
	ge.appendHistory(playerID, models.HistoryEntry{
		ID:         models.GenerateHistoryID(),
		Bet:        session.Bet,
		Result:     models.StatusWon,
		Multiplier: session.Multiplier,
		Payout:     amount,
		Steps:      session.StepsCompleted,
		Timestamp:  time.Now().UnixMilli(),
	})

	result := &models.CashoutResult{
		Success:         true,
		Amount:          amount,
		FinalMultiplier: session.Multiplier,
		Balance:         ge.wallets.Get(playerID).Balance,
	}

	if ge.broadcaster != nil {
		ge.broadcaster.SendToPlayer(playerID, "cashout", result)
	}

	return result, nil
}

// GetSession returns a copy of the session. The outcome sequence is only
// attached once the round is terminal; during play it stays server-side.
func (ge *GameEngine) GetSession(playerID, sessionID string) (*models.GameSession, error) {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	entry, err := ge.lookup(playerID, sessionID)
	if err != nil {
		return nil, err
	}

	copied := *entry.session
	if !copied.Terminal() {
		copied.Outcomes = nil
	}
	return &copied, nil
}

// GetVerificationData reveals the server seed of a terminal round and
// reports whether the recomputed sequence matches what was played. The
// seed is unavailable mid-round by construction, not by access control.
func (ge *GameEngine) GetVerificationData(playerID, sessionID string) (*models.VerificationData, error) {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	entry, err := ge.lookup(playerID, sessionID)
	if err != nil {
		return nil, err
	}
	session := entry.session

	if !session.Terminal() {
		return nil, ErrGameInProgress
	}

	return &models.VerificationData{
		ServerSeed:     entry.serverSeed,
		ServerSeedHash: session.ServerSeedHash,
		ClientSeed:     session.ClientSeed,
		Nonce:          session.Nonce,
		CellCount:      session.CellCount,
		Outcomes:       session.Outcomes,
		IsValid: VerifyOutcome(
			entry.serverSeed,
			session.ServerSeedHash,
			session.ClientSeed,
			session.Nonce,
			session.CellCount,
			session.Outcomes,
		),
	}, nil
}

// ClearSession releases a terminal session from the store.
func (ge *GameEngine) ClearSession(playerID, sessionID string) error {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	entry, err := ge.lookup(playerID, sessionID)
	if err != nil {
		return err
	}
	if !entry.session.Terminal() {
		return ErrGameInProgress
	}

	delete(ge.sessions, sessionID)
	return nil
}

// GetHistory returns the player's terminated rounds, newest first.
func (ge *GameEngine) GetHistory(playerID string) []models.HistoryEntry {
	ge.mu.Lock()
	defer ge.mu.Unlock()

	entries := ge.history[playerID]
	out := make([]models.HistoryEntry, len(entries))
	copy(out, entries)
	return out
}

func (ge *GameEngine) lookup(playerID, sessionID string) (*sessionEntry, error) {
	entry, ok := ge.sessions[sessionID]
	if !ok || entry.session.PlayerID != playerID {
		return nil, ErrSessionNotFound
	}
	return entry, nil
}

func (ge *GameEngine) appendHistory(playerID string, e models.HistoryEntry) {
	entries := append([]models.HistoryEntry{e}, ge.history[playerID]...)
	if len(entries) > ge.cfg.MaxHistory {
		entries = entries[:ge.cfg.MaxHistory]
	}
	ge.history[playerID] = entries
}
