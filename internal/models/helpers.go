package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateGameID() string {
	return fmt.Sprintf("game_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GenerateHistoryID() string {
	return fmt.Sprintf("round_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

func GeneratePlayerID() string {
	return uuid.New().String()
}
