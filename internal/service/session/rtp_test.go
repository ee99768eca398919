package session

import (
	"errors"
	"testing"

	"slot_machine/internal/model"

	"github.com/shopspring/decimal"
)

func TestExpectedRTPSingleSymbol(t *testing.T) {
	// каждое поле целиком из Num1: 16 линий по 50x
	got, err := ExpectedRTP(newEvaluator(t), []model.SymbolKind{model.Num1})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(decimal.NewFromInt(16 * 50 * 100)) {
		t.Fatalf("RTP %s, want 80000", got)
	}
}

func TestExpectedRTPDefaultPool(t *testing.T) {
	got, err := ExpectedRTP(newEvaluator(t), model.AllSymbols)
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsPositive() {
		t.Fatalf("RTP %s should be positive", got)
	}
}

func TestExpectedRTPEmptyPool(t *testing.T) {
	if _, err := ExpectedRTP(newEvaluator(t), nil); !errors.Is(err, model.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
