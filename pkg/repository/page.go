package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JaimeStill/ssma/pkg/pagination"
	"github.com/JaimeStill/ssma/pkg/query"
)

// QueryPage runs the count and page queries of qb and assembles a PageResult.
// page must already be normalized. name labels wrapped errors.
func QueryPage[T any](
	ctx context.Context,
	db *sql.DB,
	qb *query.Builder,
	page pagination.PageRequest,
	name string,
	scan ScanFunc[T],
) (*pagination.PageResult[T], error) {
	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count %s: %w", name, err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := QueryMany(ctx, db, pageSQL, pageArgs, scan)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

// QueryAll runs the unpaginated SELECT of qb.
func QueryAll[T any](
	ctx context.Context,
	db Querier,
	qb *query.Builder,
	name string,
	scan ScanFunc[T],
) ([]T, error) {
	q, args := qb.Build()
	items, err := QueryMany(ctx, db, q, args, scan)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}
	return items, nil
}

// Exec runs fn in a transaction and discards the result value.
func Exec(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	_, err := WithTx(ctx, db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, fn(tx)
	})
	return err
}
