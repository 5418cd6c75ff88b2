package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lioratech/mvp-web-sub001/modules/payroll/domain/payroll"
	"github.com/lioratech/mvp-web-sub001/pkg/composables"
)

type fakeRows struct {
	pgx.Rows
	values []string
	idx    int
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.values)
}

func (r *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.values[r.idx-1]
	return nil
}

func (r *fakeRows) Close()     {}
func (r *fakeRows) Err() error { return nil }

type queryCall struct {
	sql  string
	args []any
}

type queryFakeTx struct {
	fakeTx
	queries []queryCall
	results [][]string
}

func (f *queryFakeTx) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, queryCall{sql: sql, args: args})
	var values []string
	if len(f.results) > 0 {
		values = f.results[0]
		f.results = f.results[1:]
	}
	return &fakeRows{values: values}, nil
}

func TestPayrollRepository_InsertEvents_ArgsPerRow(t *testing.T) {
	repo := NewPayrollRepository(65000, 1000)
	tx := &fakeTx{}
	ctx := composables.WithTx(context.Background(), tx)

	rows := []payroll.EventRow{
		{AccountID: uuid.New(), EventCode: "001", EventKind: payroll.EventKindEarning},
		{AccountID: uuid.New(), EventCode: "901", EventKind: payroll.EventKindDeduction},
	}
	affected, err := repo.InsertEvents(ctx, rows)
	require.NoError(t, err)

	assert.Equal(t, int64(2), affected)
	require.Len(t, tx.calls, 1)
	assert.Len(t, tx.calls[0].args, 2*34)
	assert.Contains(t, tx.calls[0].sql, "INSERT INTO payroll_events")
}

func TestPayrollRepository_InsertStatuses_ConflictTolerant(t *testing.T) {
	repo := NewPayrollRepository(65000, 1000)
	tx := &fakeTx{}
	ctx := composables.WithTx(context.Background(), tx)

	accountID := uuid.New()
	affected, err := repo.InsertStatuses(ctx, []payroll.StatusRow{
		{AccountID: accountID, Label: "Ativo"},
		{AccountID: accountID, Label: "Ferias"},
	})
	require.NoError(t, err)

	require.Len(t, tx.calls, 1)
	assert.Contains(t, tx.calls[0].sql, "ON CONFLICT (account_id, label) DO NOTHING")
	// the conflict clause has its own parenthesised column list; the
	// reported count still reflects the two inserted rows
	assert.Equal(t, int64(2), affected)
}

func TestPayrollRepository_KnownCollaborators_Chunked(t *testing.T) {
	repo := NewPayrollRepository(65000, 2)
	tx := &queryFakeTx{results: [][]string{{"111"}, {"444"}}}
	ctx := composables.WithTx(context.Background(), tx)

	known, err := repo.KnownCollaborators(ctx, uuid.New(), []string{"111", "222", "333", "444"})
	require.NoError(t, err)

	require.Len(t, tx.queries, 2)
	assert.Equal(t, []string{"111", "222"}, tx.queries[0].args[1])
	assert.Equal(t, []string{"333", "444"}, tx.queries[1].args[1])
	assert.Equal(t, map[string]struct{}{"111": {}, "444": {}}, known)
}

func TestPayrollRepository_KnownStatuses_NoValues(t *testing.T) {
	repo := NewPayrollRepository(65000, 1000)
	tx := &queryFakeTx{}
	ctx := composables.WithTx(context.Background(), tx)

	known, err := repo.KnownStatuses(ctx, uuid.New(), nil)
	require.NoError(t, err)

	assert.Empty(t, known)
	assert.Empty(t, tx.queries)
}

func TestPayrollRepository_DeleteRun_CoversRunScopedTables(t *testing.T) {
	repo := NewPayrollRepository(65000, 1000)
	tx := &fakeTx{}
	ctx := composables.WithTx(context.Background(), tx)

	counts, err := repo.DeleteRun(ctx, uuid.New(), uuid.New())
	require.NoError(t, err)

	assert.Len(t, tx.calls, 7)
	for _, call := range tx.calls {
		assert.Contains(t, call.sql, "WHERE account_id = $1 AND run_id = $2")
	}
	// statuses are account-level and never deleted with a run
	assert.Contains(t, counts, payroll.CountStatuses)
	assert.Zero(t, counts[payroll.CountStatuses])
	assert.Len(t, counts, 8)
}

func TestPayrollRepository_NoTxInContext(t *testing.T) {
	repo := NewPayrollRepository(65000, 1000)

	_, err := repo.InsertEvents(context.Background(), []payroll.EventRow{{}})
	require.ErrorIs(t, err, composables.ErrNoTx)
}
