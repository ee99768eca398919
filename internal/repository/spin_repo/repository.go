package spin_repo

import (
	"context"
	"fmt"
	"slot_machine/internal/model"
	"slot_machine/internal/repository"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"
)

const (
	spinsTable   = "spin_journal"
	idColumn     = "id"
	betColumn    = "bet"
	winColumn    = "total_win"
	balanceCol   = "balance_after"
	gridColumn   = "grid"
	createdAtCol = "created_at"

	linesTable   = "spin_journal_lines"
	spinIDColumn = "spin_id"
	lineIndexCol = "line_index"
	symbolColumn = "symbol"
	countColumn  = "match_count"
	payoutColumn = "payout"
	cellsColumn  = "cells"

	defaultLimit = 50
	maxListLimit = 1000
)

type repo struct {
	dbc       *pgxpool.Pool
	getter    *trmpgx.CtxGetter
	txManager trm.Manager
}

func NewSpinRepository(dbc *pgxpool.Pool, txManager trm.Manager) repository.SpinRepository {
	return &repo{
		dbc:       dbc,
		getter:    trmpgx.DefaultCtxGetter,
		txManager: txManager,
	}
}

// Save пишет спин и его выигрышные линии в одной транзакции
func (r *repo) Save(ctx context.Context, spin model.SpinResult) error {
	grid, err := encodeGrid(spin.Grid)
	if err != nil {
		return err
	}

	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		tr := r.getter.DefaultTrOrDB(txCtx, r.dbc)

		query := sq.Insert(spinsTable).
			Columns(idColumn, betColumn, winColumn, balanceCol, gridColumn, createdAtCol).
			Values(spin.ID.String(), spin.Bet, spin.Win.Total, spin.BalanceAfter, grid, spin.FinishedAt).
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return err
		}
		if _, err = tr.Exec(txCtx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert spin: %w", err)
		}

		// Проигрышный спин без линий
		if len(spin.Win.Lines) == 0 {
			return nil
		}

		linesQuery := sq.Insert(linesTable).
			Columns(spinIDColumn, lineIndexCol, symbolColumn, countColumn, payoutColumn, cellsColumn).
			PlaceholderFormat(sq.Dollar)
		for _, l := range spin.Win.Lines {
			cells, err := encodeCells(l.Cells)
			if err != nil {
				return err
			}
			linesQuery = linesQuery.Values(spin.ID.String(), l.Index, l.Symbol.String(), l.Count, l.Payout, cells)
		}

		sqlStr, args, err = linesQuery.ToSql()
		if err != nil {
			return err
		}
		if _, err = tr.Exec(txCtx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert spin lines: %w", err)
		}
		return nil
	})
}

// List последние спины, новые первыми
func (r *repo) List(ctx context.Context, limit int) ([]model.SpinResult, error) {
	limit = normalizeLimit(limit)
	tr := r.getter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select(idColumn, betColumn, winColumn, balanceCol, gridColumn, createdAtCol).
		From(spinsTable).
		OrderBy(createdAtCol + " DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := tr.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		spins []model.SpinResult
		ids   []string
		byID  = map[string]int{}
	)
	for rows.Next() {
		var (
			id        string
			rawGrid   []byte
			createdAt time.Time
			spin      model.SpinResult
		)
		if err = rows.Scan(&id, &spin.Bet, &spin.Win.Total, &spin.BalanceAfter, &rawGrid, &createdAt); err != nil {
			return nil, err
		}
		if spin.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if spin.Grid, err = decodeGrid(rawGrid); err != nil {
			return nil, err
		}
		spin.FinishedAt = createdAt

		byID[id] = len(spins)
		ids = append(ids, id)
		spins = append(spins, spin)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return spins, nil
	}

	if err = r.attachLines(ctx, spins, ids, byID); err != nil {
		return nil, err
	}
	return spins, nil
}

func (r *repo) attachLines(ctx context.Context, spins []model.SpinResult, ids []string, byID map[string]int) error {
	tr := r.getter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Select(spinIDColumn, lineIndexCol, symbolColumn, countColumn, payoutColumn, cellsColumn).
		From(linesTable).
		Where(sq.Eq{spinIDColumn: ids}).
		OrderBy(spinIDColumn, lineIndexCol).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	rows, err := tr.Query(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id       string
			symbol   string
			rawCells []byte
			line     model.LineWin
		)
		if err = rows.Scan(&id, &line.Index, &symbol, &line.Count, &line.Payout, &rawCells); err != nil {
			return err
		}
		if line, err = decodeLine(line, symbol, rawCells); err != nil {
			return fmt.Errorf("spin %s: %w", id, err)
		}

		i, ok := byID[id]
		if !ok {
			continue
		}
		spins[i].Win.Lines = append(spins[i].Win.Lines, line)
	}
	return rows.Err()
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return min(limit, maxListLimit)
}

// Клетки линии хранятся в jsonb парами [барабан, ряд]
func encodeCells(cells []model.Cell) (string, error) {
	pairs := make([][2]int, len(cells))
	for i, c := range cells {
		pairs[i] = [2]int{c.Reel, c.Row}
	}
	return jsoniter.MarshalToString(pairs)
}

// decodeLine дополняет прочитанную строку линии символом и клетками
func decodeLine(line model.LineWin, symbol string, rawCells []byte) (model.LineWin, error) {
	kind, ok := model.ParseSymbolKind(symbol)
	if !ok {
		return line, fmt.Errorf("unknown symbol %q", symbol)
	}
	line.Symbol = kind

	var pairs [][2]int
	if err := jsoniter.Unmarshal(rawCells, &pairs); err != nil {
		return line, fmt.Errorf("decode cells: %w", err)
	}
	line.Cells = make([]model.Cell, len(pairs))
	for i, p := range pairs {
		line.Cells[i] = model.Cell{Reel: p[0], Row: p[1]}
	}
	return line, nil
}

// Поле хранится в jsonb как массив барабанов с именами символов
func encodeGrid(g model.Grid) (string, error) {
	names := make([][]string, len(g))
	for r, col := range g {
		names[r] = make([]string, len(col))
		for i, s := range col {
			names[r][i] = s.String()
		}
	}
	return jsoniter.MarshalToString(names)
}

func decodeGrid(raw []byte) (model.Grid, error) {
	var names [][]string
	if err := jsoniter.Unmarshal(raw, &names); err != nil {
		return nil, err
	}
	g := make(model.Grid, len(names))
	for r, col := range names {
		g[r] = make([]model.SymbolKind, len(col))
		for i, name := range col {
			kind, ok := model.ParseSymbolKind(name)
			if !ok {
				return nil, fmt.Errorf("unknown symbol %q in grid", name)
			}
			g[r][i] = kind
		}
	}
	return g, nil
}
