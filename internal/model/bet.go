package model

import "fmt"

// BetState баланс и ставка игрока
type BetState struct {
	Balance    int
	CurrentBet int
	MinBet     int
	MaxBet     int
	Step       int
}

// Validate проверяет настройки ставки
func (b BetState) Validate() error {
	switch {
	case b.Balance < 0:
		return fmt.Errorf("%w: negative balance %d", ErrConfiguration, b.Balance)
	case b.Step <= 0:
		return fmt.Errorf("%w: bet step must be positive, got %d", ErrConfiguration, b.Step)
	case b.MinBet <= 0 || b.MinBet > b.MaxBet:
		return fmt.Errorf("%w: invalid bet bounds [%d, %d]", ErrConfiguration, b.MinBet, b.MaxBet)
	case (b.MaxBet-b.MinBet)%b.Step != 0:
		return fmt.Errorf("%w: bet range [%d, %d] is not a multiple of step %d", ErrConfiguration, b.MinBet, b.MaxBet, b.Step)
	case b.Clamp(b.CurrentBet) != b.CurrentBet:
		return fmt.Errorf("%w: current bet %d is out of range or off step", ErrConfiguration, b.CurrentBet)
	}
	return nil
}

// Clamp приводит ставку к [MinBet, MaxBet] и к шагу, отсчитанному от MinBet
func (b BetState) Clamp(bet int) int {
	bet = max(b.MinBet, min(bet, b.MaxBet))
	if b.Step > 0 {
		bet = b.MinBet + (bet-b.MinBet)/b.Step*b.Step
	}
	return bet
}

// Shift текущая ставка, сдвинутая на delta и приведённая к границам.
// delta сначала ограничивается расстоянием до границ, поэтому сложение не переполняется
func (b BetState) Shift(delta int) int {
	delta = max(b.MinBet-b.CurrentBet, min(delta, b.MaxBet-b.CurrentBet))
	return b.Clamp(b.CurrentBet + delta)
}

func (b BetState) CanIncrease() bool {
	return b.CurrentBet < b.MaxBet
}

func (b BetState) CanDecrease() bool {
	return b.CurrentBet > b.MinBet
}

// Affordable хватает ли баланса на текущую ставку
func (b BetState) Affordable() bool {
	return b.Balance >= b.CurrentBet
}
