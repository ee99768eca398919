package model

import "github.com/shopspring/decimal"

// RTPStats статистика возврата игроку
type RTPStats struct {
	TotalSpins  int
	TotalBet    decimal.Decimal
	TotalPayout decimal.Decimal

	CurrentRTP decimal.Decimal // TotalPayout/TotalBet*100
	TargetRTP  decimal.Decimal // Теоретический RTP движка

	WindowRTP  decimal.Decimal // RTP последних WindowSize спинов
	WindowSize int
	WindowLen  int

	Deviating bool   // Окно ушло от цели дальше порога
	Direction string // "high" или "low"
}
