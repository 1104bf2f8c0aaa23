package services

import (
	"sync"

	"steprush-backend/internal/models"
)

// WalletService keeps per-player balances in memory. Wallets are created
// lazily with the configured starting balance.
type WalletService struct {
	mu              sync.Mutex
	wallets         map[string]*models.Wallet
	startingBalance float64
}

func NewWalletService(startingBalance float64) *WalletService {
	return &WalletService{
		wallets:         make(map[string]*models.Wallet),
		startingBalance: startingBalance,
	}
}

func (ws *WalletService) get(playerID string) *models.Wallet {
	w, ok := ws.wallets[playerID]
	if !ok {
		w = &models.Wallet{
			PlayerID: playerID,
			Balance:  ws.startingBalance,
		}
		ws.wallets[playerID] = w
	}
	return w
}

func (ws *WalletService) Get(playerID string) models.Wallet {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return *ws.get(playerID)
}

// Debit removes a stake from the balance. The stake is gone the moment
// the round starts; losses are never refunded.
func (ws *WalletService) Debit(playerID string, amount float64) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	w := ws.get(playerID)
	if amount > w.Balance {
		return ErrInsufficientBalance
	}
	w.Balance -= amount
	w.TotalWagered += amount
	return nil
}

func (ws *WalletService) Credit(playerID string, amount float64) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	w := ws.get(playerID)
	w.Balance += amount
	w.TotalWon += amount
}
