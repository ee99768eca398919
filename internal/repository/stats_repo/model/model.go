package model

import "github.com/shopspring/decimal"

// SessionStats состояние статистики сессии
type SessionStats struct {
	TotalSpins  int             // Сколько всего спинов сделано
	TotalBet    decimal.Decimal // Сумма всех ставок
	TotalPayout decimal.Decimal // Сумма всех выплат

	CurrentRTP decimal.Decimal // TotalPayout/TotalBet*100
	TargetRTP  decimal.Decimal // Теоретический RTP

	Deviating bool   // Окно ушло от цели дальше критического порога
	Direction string // "high" или "low"

	SpinWindow []SpinEntry     // Окно последних спинов
	WindowBet  decimal.Decimal // Сумма ставок в окне
	WindowPay  decimal.Decimal // Сумма выплат в окне
	WindowRTP  decimal.Decimal // RTP в окне
	WindowSize int             // Размер окна
}

// SpinEntry спин в окне
type SpinEntry struct {
	Bet    decimal.Decimal
	Payout decimal.Decimal
}
