package session

import "time"

type ChangeBetRequest struct {
	Delta int `json:"delta"` // Изменение ставки, может быть отрицательным
}

type StateResponse struct {
	Phase          string      `json:"phase"`                   // idle, spinning, evaluating
	Balance        int         `json:"balance"`                 // Баланс
	CurrentBet     int         `json:"current_bet"`             // Текущая ставка
	MinBet         int         `json:"min_bet"`                 // Минимальная ставка
	MaxBet         int         `json:"max_bet"`                 // Максимальная ставка
	BetStep        int         `json:"bet_step"`                // Шаг ставки
	CanSpin        bool        `json:"can_spin"`                // Можно ли крутить
	CanIncreaseBet bool        `json:"can_increase_bet"`        // Активна ли кнопка "+"
	CanDecreaseBet bool        `json:"can_decrease_bet"`        // Активна ли кнопка "-"
	SpinID         string      `json:"spin_id,omitempty"`       // Последний или текущий спин
	PendingReels   []int       `json:"pending_reels,omitempty"` // Барабаны, которые ещё крутятся
	Reels          []ReelState `json:"reels"`
}

type ReelState struct {
	Index      int     `json:"index"`
	Phase      string  `json:"phase"`
	Elapsed    float64 `json:"elapsed"`     // Секунды с конца задержки
	StartDelay float64 `json:"start_delay"` // Секунды
	Speed      float64 `json:"speed"`
}

type GridResponse struct {
	Grid [][]string `json:"grid"` // [барабан][ряд]
}

type PaylinesResponse struct {
	Lines []Payline `json:"lines"`
}

type Payline struct {
	Line int   `json:"line"` // 1-16, как в LineWin
	Rows []int `json:"rows"` // Ряд на каждом барабане
}

type SpinResponse struct {
	SpinID     string     `json:"spin_id"`
	Bet        int        `json:"bet"`
	TotalWin   int        `json:"total_win"`
	Balance    int        `json:"balance"` // Баланс после спина
	Grid       [][]string `json:"grid"`
	LineWins   []LineWin  `json:"line_wins"`
	FinishedAt time.Time  `json:"finished_at"`
}

type LineWin struct {
	Line   int    `json:"line"`   // 1-16
	Symbol string `json:"symbol"` // Имя символа
	Count  int    `json:"count"`  // 3-5
	Payout int    `json:"payout"` // Выплата
	Cells  []Cell `json:"cells"`  // Клетки для подсветки
}

type Cell struct {
	Reel int `json:"reel"`
	Row  int `json:"row"`
}

type StatsResponse struct {
	TotalSpins  int    `json:"total_spins"`
	TotalBet    string `json:"total_bet"`
	TotalPayout string `json:"total_payout"`
	CurrentRTP  string `json:"current_rtp"` // Проценты
	TargetRTP   string `json:"target_rtp"`
	WindowRTP   string `json:"window_rtp"`
	WindowSize  int    `json:"window_size"`
	WindowLen   int    `json:"window_len"`
	Deviating   bool   `json:"deviating"`
	Direction   string `json:"direction,omitempty"`
}

// EventMessage событие для websocket и Redis
type EventMessage struct {
	Type    string        `json:"type"`
	SpinID  string        `json:"spin_id,omitempty"`
	At      time.Time     `json:"at"`
	Balance *int          `json:"balance,omitempty"` // balance_changed
	Bet     *int          `json:"bet,omitempty"`     // bet_changed, spin_started
	Reel    *int          `json:"reel,omitempty"`    // reel_stopped
	Symbols []string      `json:"symbols,omitempty"` // reel_stopped
	Result  *SpinResponse `json:"result,omitempty"`  // spin_evaluated
}
