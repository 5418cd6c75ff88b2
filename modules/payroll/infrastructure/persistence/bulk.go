package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"

	"github.com/lioratech/mvp-web-sub001/pkg/repo"
)

// bulkInsert composes multi-row INSERT statements for one table and executes
// them in batches sized so that rows*columns never exceeds the driver's
// bound-parameter ceiling.
type bulkInsert struct {
	table   string
	columns []string
	suffix  string // trailing clause, e.g. conflict handling
}

// maxRows returns how many rows fit under the parameter ceiling: the floor
// of ceiling/columns, never below one.
func (b bulkInsert) maxRows(ceiling int) int {
	n := ceiling / len(b.columns)
	if n < 1 {
		return 1
	}
	return n
}

// statement renders the INSERT for exactly rowCount rows with sequential
// positional placeholders ($1..$N).
func (b bulkInsert) statement(rowCount int) string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.table)
	sb.WriteString(" (")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(") VALUES ")
	p := 1
	for row := 0; row < rowCount; row++ {
		if row > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for col := 0; col < len(b.columns); col++ {
			if col > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", p)
			p++
		}
		sb.WriteByte(')')
	}
	if b.suffix != "" {
		sb.WriteByte(' ')
		sb.WriteString(b.suffix)
	}
	return sb.String()
}

// execBatched inserts rowCount rows through tx, slicing them into
// ceiling-sized batches. values must append the bound arguments of row i, in
// column order, to dst. Returns the total rows affected, which with a
// conflict suffix can be lower than rowCount.
func (b bulkInsert) execBatched(
	ctx context.Context,
	tx repo.Tx,
	ceiling int,
	rowCount int,
	values func(dst []any, i int) []any,
) (int64, error) {
	if rowCount == 0 {
		return 0, nil
	}
	batch := b.maxRows(ceiling)
	var affected int64
	for start := 0; start < rowCount; start += batch {
		end := start + batch
		if end > rowCount {
			end = rowCount
		}
		args := make([]any, 0, (end-start)*len(b.columns))
		for i := start; i < end; i++ {
			args = values(args, i)
		}
		tag, err := tx.Exec(ctx, b.statement(end-start), args...)
		if err != nil {
			return affected, errors.Wrapf(err, "bulk insert into %s", b.table)
		}
		affected += tag.RowsAffected()
	}
	return affected, nil
}

// chunkStrings splits ids into slices of at most size elements.
func chunkStrings(ids []string, size int) [][]string {
	if size < 1 {
		size = 1
	}
	var out [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[start:end])
	}
	return out
}
