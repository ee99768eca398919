package spin_repo

import (
	"context"
	"os"
	"slices"
	"testing"
	"time"

	"slot_machine/internal/model"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Интеграционный тест журнала запускается, только если задан PG_DSN
const testDSNEnvName = "PG_DSN"

func winningSpin() model.SpinResult {
	return model.SpinResult{
		ID:  uuid.New(),
		Bet: 50,
		Grid: model.Grid{
			{model.Num1, model.Num1, model.J},
			{model.Num1, model.Num1, model.Q},
			{model.Num1, model.Wild, model.K},
			{model.J, model.Q, model.K},
			{model.J, model.Q, model.K},
		},
		Win: model.WinResult{
			Total: 500,
			Lines: []model.LineWin{
				{
					Index: 0, Symbol: model.Num1, Count: 3, Payout: 250,
					Cells: []model.Cell{{Reel: 0, Row: 0}, {Reel: 1, Row: 0}, {Reel: 2, Row: 0}, {Reel: 3, Row: 0}, {Reel: 4, Row: 0}},
				},
				{
					Index: 1, Symbol: model.Num1, Count: 3, Payout: 250,
					Cells: []model.Cell{{Reel: 0, Row: 1}, {Reel: 1, Row: 1}, {Reel: 2, Row: 1}, {Reel: 3, Row: 1}, {Reel: 4, Row: 1}},
				},
			},
		},
		BalanceAfter: 1450,
		FinishedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestDecodeLineRestoresCells(t *testing.T) {
	want := winningSpin().Win.Lines[1]

	raw, err := encodeCells(want.Cells)
	if err != nil {
		t.Fatal(err)
	}
	if raw != `[[0,1],[1,1],[2,1],[3,1],[4,1]]` {
		t.Fatalf("unexpected encoding %s", raw)
	}

	got, err := decodeLine(model.LineWin{Index: want.Index, Count: want.Count, Payout: want.Payout}, "Num1", []byte(raw))
	if err != nil {
		t.Fatal(err)
	}
	if got.Symbol != want.Symbol || !slices.Equal(got.Cells, want.Cells) {
		t.Fatalf("decoded %+v, want %+v", got, want)
	}
}

func TestDecodeLineErrors(t *testing.T) {
	if _, err := decodeLine(model.LineWin{}, "Bar", []byte(`[]`)); err == nil {
		t.Fatal("unknown symbol decoded")
	}
	if _, err := decodeLine(model.LineWin{}, "J", []byte(`{`)); err == nil {
		t.Fatal("broken cells decoded")
	}
}

func TestPostgresJournalRoundTrip(t *testing.T) {
	dsn := os.Getenv(testDSNEnvName)
	if dsn == "" {
		t.Skip("PG_DSN not set")
	}
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	schema, err := os.ReadFile("../../../migrations/001_spin_journal.sql")
	if err != nil {
		t.Fatal(err)
	}
	if _, err = pool.Exec(ctx, string(schema)); err != nil {
		t.Fatal(err)
	}

	txManager, err := manager.New(trmpgx.NewDefaultFactory(pool))
	if err != nil {
		t.Fatal(err)
	}
	repo := NewSpinRepository(pool, txManager)

	spin := winningSpin()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DELETE FROM spin_journal WHERE id = $1", spin.ID.String())
	})
	if err = repo.Save(ctx, spin); err != nil {
		t.Fatal(err)
	}

	spins, err := repo.List(ctx, maxListLimit)
	if err != nil {
		t.Fatal(err)
	}
	i := slices.IndexFunc(spins, func(s model.SpinResult) bool { return s.ID == spin.ID })
	if i < 0 {
		t.Fatal("saved spin not listed")
	}
	got := spins[i]
	if got.Bet != spin.Bet || got.Win.Total != spin.Win.Total || got.BalanceAfter != spin.BalanceAfter {
		t.Fatalf("listed %+v, want %+v", got, spin)
	}
	if len(got.Win.Lines) != len(spin.Win.Lines) {
		t.Fatalf("listed %d lines, want %d", len(got.Win.Lines), len(spin.Win.Lines))
	}
	for j, line := range spin.Win.Lines {
		if got.Win.Lines[j].Symbol != line.Symbol || !slices.Equal(got.Win.Lines[j].Cells, line.Cells) {
			t.Fatalf("line %d: got %+v, want %+v", j, got.Win.Lines[j], line)
		}
	}
	if got.Grid.At(2, 1) != model.Wild {
		t.Fatalf("grid not restored: %v", got.Grid)
	}
}
