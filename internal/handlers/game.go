package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"steprush-backend/internal/models"
	"steprush-backend/internal/services"
)

type GameHandler struct {
	gameEngine *services.GameEngine
	wallets    *services.WalletService
}

func NewGameHandler(gameEngine *services.GameEngine, wallets *services.WalletService) *GameHandler {
	return &GameHandler{
		gameEngine: gameEngine,
		wallets:    wallets,
	}
}

func (h *GameHandler) StartGame(c *gin.Context) {
	playerID := c.GetString("player_id")

	var req models.StartGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	session, err := h.gameEngine.StartGame(c.Request.Context(), playerID, &req)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   "Failed to start game",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game": gin.H{
			"id":               session.ID,
			"server_seed_hash": session.ServerSeedHash,
			"client_seed":      session.ClientSeed,
			"nonce":            session.Nonce,
			"cell_count":       session.CellCount,
			"bet":              session.Bet,
			"steps_completed":  session.StepsCompleted,
			"multiplier":       session.Multiplier,
			"potential_win":    session.PotentialWin,
			"policy":           h.gameEngine.Policy(),
			"status":           session.Status,
			"created_at":       session.CreatedAt,
		},
	})
}

func (h *GameHandler) MakeStep(c *gin.Context) {
	playerID := c.GetString("player_id")

	var req models.StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.gameEngine.MakeStep(c.Request.Context(), playerID, req.GameID, req.CellIndex)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   "Failed to make step",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) Cashout(c *gin.Context) {
	playerID := c.GetString("player_id")

	var req models.CashoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	result, err := h.gameEngine.Cashout(c.Request.Context(), playerID, req.GameID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   "Failed to cashout",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h *GameHandler) GetSession(c *gin.Context) {
	playerID := c.GetString("player_id")
	sessionID := c.Param("id")

	session, err := h.gameEngine.GetSession(playerID, sessionID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   "Failed to get session",
			"details": err.Error(),
		})
		return
	}

	response := gin.H{
		"id":               session.ID,
		"server_seed_hash": session.ServerSeedHash,
		"client_seed":      session.ClientSeed,
		"nonce":            session.Nonce,
		"cell_count":       session.CellCount,
		"bet":              session.Bet,
		"steps_completed":  session.StepsCompleted,
		"multiplier":       session.Multiplier,
		"potential_win":    session.PotentialWin,
		"status":           session.Status,
		"created_at":       session.CreatedAt,
	}
	// Outcomes are only visible once the round is terminal.
	if session.Outcomes != nil {
		response["outcomes"] = session.Outcomes
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"game":    response,
	})
}

func (h *GameHandler) ClearSession(c *gin.Context) {
	playerID := c.GetString("player_id")
	sessionID := c.Param("id")

	if err := h.gameEngine.ClearSession(playerID, sessionID); err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   "Failed to clear session",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *GameHandler) GetVerificationData(c *gin.Context) {
	playerID := c.GetString("player_id")
	sessionID := c.Param("id")

	data, err := h.gameEngine.GetVerificationData(playerID, sessionID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   "Failed to get verification data",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// VerifyGame recomputes an outcome sequence from submitted seed material.
// Stateless: anyone can check a revealed round without holding a session.
func (h *GameHandler) VerifyGame(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	isValid := services.VerifyOutcome(
		req.ServerSeed,
		req.ServerSeedHash,
		req.ClientSeed,
		req.Nonce,
		req.CellCount,
		req.Outcomes,
	)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"verification": gin.H{
			"is_valid":         isValid,
			"server_seed":      req.ServerSeed,
			"server_seed_hash": req.ServerSeedHash,
			"client_seed":      req.ClientSeed,
			"nonce":            req.Nonce,
		},
	})
}

func (h *GameHandler) GetHistory(c *gin.Context) {
	playerID := c.GetString("player_id")

	entries := h.gameEngine.GetHistory(playerID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": entries,
		"count":   len(entries),
	})
}

func (h *GameHandler) GetBalance(c *gin.Context) {
	playerID := c.GetString("player_id")

	wallet := h.wallets.Get(playerID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"balance": models.BalanceResponse{
			Balance:      wallet.Balance,
			TotalWagered: wallet.TotalWagered,
			TotalWon:     wallet.TotalWon,
		},
	})
}

// GetMultipliers returns the coefficient table and survival odds for a
// cell count, so clients can render the reward curve up front.
func (h *GameHandler) GetMultipliers(c *gin.Context) {
	cfg := h.gameEngine.Config()

	cells, err := strconv.Atoi(c.DefaultQuery("cells", strconv.Itoa(cfg.MinCells)))
	if err != nil || cells < cfg.MinCells || cells > cfg.MaxCells {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cell count",
		})
		return
	}

	model := h.gameEngine.Multipliers()
	table := model.MultiplierTable(cells, cfg.MaxSteps)

	odds := make([]float64, 0, cfg.MaxSteps)
	for step := 1; step <= cfg.MaxSteps; step++ {
		odds = append(odds, services.TotalWinProbability(cells, step))
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"cell_count":      cells,
		"multipliers":     table,
		"win_probability": services.WinProbability(cells),
		"total_win_odds":  odds,
		"max_multiplier":  model.MaxMultiplier(cells, cfg.MaxSteps),
		"max_steps":       cfg.MaxSteps,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidBet),
		errors.Is(err, services.ErrInvalidCellCount),
		errors.Is(err, services.ErrInsufficientBalance),
		errors.Is(err, services.ErrNotPlaying),
		errors.Is(err, services.ErrActiveRound),
		errors.Is(err, services.ErrNoStepsTaken),
		errors.Is(err, services.ErrMaxStepsReached),
		errors.Is(err, services.ErrCellRequired),
		errors.Is(err, services.ErrInvalidCell),
		errors.Is(err, services.ErrGameInProgress):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
