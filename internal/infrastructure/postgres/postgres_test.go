package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-relocation/internal/domain"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/stock"
)

// execQuerier Querier que solo responde Exec con un número fijo de filas afectadas.
type execQuerier struct {
	rows    int64
	sql     string
	args    []any
	batches int
}

func (q *execQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.sql, q.args = sql, args
	return pgconn.NewCommandTag(fmt.Sprintf("UPDATE %d", q.rows)), nil
}

func (q *execQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("no implementado")
}

func (q *execQuerier) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func (q *execQuerier) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	q.batches++
	return nil
}

func TestMoveRepo_CreateBatchRechazaOrigenNoPermitido(t *testing.T) {
	q := &execQuerier{}
	moves := []*entity.Move{
		{ProductID: "p1", Origin: entity.Origin{Model: entity.OriginRelocation, ID: "r1"}},
		{ProductID: "p1", Origin: entity.Origin{Model: "account.invoice", ID: "f1"}},
	}

	err := NewMoveRepository(q).CreateBatch(context.Background(), moves)

	assert.ErrorIs(t, err, domain.ErrInvalidOrigin)
	assert.Zero(t, q.batches)
}

func TestMoveRepo_CreateBatchVacio(t *testing.T) {
	q := &execQuerier{}
	require.NoError(t, NewMoveRepository(q).CreateBatch(context.Background(), nil))
	assert.Zero(t, q.batches)
}

func TestMoveRepo_Do(t *testing.T) {
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	moves := []*entity.Move{{ID: "m1", State: entity.MoveStateDraft}, {ID: "m2", State: entity.MoveStateDraft}}

	q := &execQuerier{rows: 2}
	require.NoError(t, NewMoveRepository(q).Do(context.Background(), moves, today))
	assert.Equal(t, []string{"m1", "m2"}, q.args[0])
	for _, m := range moves {
		assert.Equal(t, entity.MoveStateDone, m.State)
		assert.Equal(t, today, m.EffectiveDate)
	}

	pending := []*entity.Move{{ID: "m3", State: entity.MoveStateDraft}, {ID: "m4", State: entity.MoveStateDraft}}
	q = &execQuerier{rows: 1}
	err := NewMoveRepository(q).Do(context.Background(), pending, today)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.MoveStateDraft, pending[0].State)
}

func TestClasificacionDeErrores(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	check := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23514"})

	assert.True(t, isUniqueViolation(unique))
	assert.False(t, isUniqueViolation(check))
	assert.True(t, isCheckViolation(check))
	assert.False(t, isCheckViolation(errors.New("otro")))
}

func TestMigracionesEmbebidas(t *testing.T) {
	data, err := fs.ReadFile(migrationsFS, "migrations/00001_init.sql")
	require.NoError(t, err)
	sql := string(data)
	assert.Contains(t, sql, "-- +goose Up")
	assert.Contains(t, sql, "-- +goose Down")
	for _, table := range []string{"stock_locations", "stock_moves", "stock_product_locations", "stock_relocations", "stock_configuration"} {
		assert.Contains(t, sql, "CREATE TABLE "+table)
	}
	assert.Contains(t, sql, "'stock.relocation'", "las reubicaciones son un origen de movimiento permitido")
	assert.Contains(t, sql, "CHECK (from_location_id <> to_location_id)")
}

// stockRow fila (ubicación, producto, cantidad) devuelta por la consulta de existencias.
type stockRow struct {
	location, product, qty string
}

// fakeRows pgx.Rows sobre filas en memoria; solo Scan a *string y *decimal.Decimal.
type fakeRows struct {
	rows   []stockRow
	i      int
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, errors.New("no implementado") }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.i >= len(r.rows) {
		return false
	}
	r.i++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.i-1]
	*dest[0].(*string) = row.location
	*dest[1].(*string) = row.product
	qty, err := decimal.NewFromString(row.qty)
	if err != nil {
		return err
	}
	*dest[2].(*decimal.Decimal) = qty
	return nil
}

// queryQuerier Querier que responde Query con filas fijas y guarda los argumentos recibidos.
type queryQuerier struct {
	execQuerier
	rows    *fakeRows
	queries int
}

func (q *queryQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.queries++
	q.sql, q.args = sql, args
	return q.rows, nil
}

func TestStockRepo_ProductsByLocation(t *testing.T) {
	date := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	rows := &fakeRows{rows: []stockRow{
		{"A", "p1", "7.5"},
		{"B", "p1", "-2"},
		{"A", "p2", "0"},
	}}
	q := &queryQuerier{rows: rows}

	got, err := NewStockRepository(q).ProductsByLocation(context.Background(), []string{"A", "B"}, []string{"p1", "p2"}, date)

	require.NoError(t, err)
	require.Len(t, q.args, 3)
	assert.Equal(t, []string{"A", "B"}, q.args[0], "$1 ubicaciones")
	assert.Equal(t, []string{"p1", "p2"}, q.args[1], "$2 productos")
	assert.Equal(t, date, q.args[2], "$3 fecha")
	assert.Contains(t, q.sql, "state = 'done' AND effective_date <= $3")
	assert.True(t, rows.closed)

	assert.Len(t, got, 3)
	assert.Equal(t, "7.5", got.Get(stock.Key{LocationID: "A", ProductID: "p1"}).String())
	assert.Equal(t, "-2", got.Get(stock.Key{LocationID: "B", ProductID: "p1"}).String())
	assert.True(t, got.Get(stock.Key{LocationID: "B", ProductID: "p2"}).IsZero(), "par sin fila es cero")
}

func TestStockRepo_ProductsByLocationSinParesNoConsulta(t *testing.T) {
	q := &queryQuerier{}
	got, err := NewStockRepository(q).ProductsByLocation(context.Background(), nil, []string{"p1"}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, q.queries)
}
