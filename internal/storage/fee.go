package storage

import (
	"database/sql"
	"fmt"
	"slices"

	"github.com/gagliardetto/solana-go"

	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/types"
	"github.com/staccDOTsol/safemoononsolwithtransferhooks/internal/utils"
)

var feeEventColumns = utils.Columns(&types.FeeEvent{})

type FeeEventStorage struct {
	client *sql.DB
}

func NewFeeEventStorage(db *sql.DB) *FeeEventStorage {
	return &FeeEventStorage{client: db}
}

func (s *FeeEventStorage) Set(event *types.FeeEvent) error {
	query := fmt.Sprintf(`INSERT INTO %s %s`, TABLE_NAME_FEE_EVENTS, utils.BuildInsertQuery(event))

	_, err := s.client.Exec(
		query,
		event.Signature,
		event.Slot,
		event.Mint.String(),
		event.Amount,
		event.Fee,
		event.Burn,
		event.Swap,
		event.Deposit,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fee event: %w", err)
	}

	return nil
}

func (s *FeeEventStorage) Search(filter types.MySQLFilter) ([]types.FeeEvent, error) {
	for _, q := range filter.Query {
		if !slices.Contains(feeEventColumns, q.Column) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidColumn, q.Column)
		}
	}

	query, values, err := utils.BuildSearchQuery(TABLE_NAME_FEE_EVENTS, feeEventColumns, filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.client.Query(query, values...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrExecuteQuery, err)
	}
	defer rows.Close()

	events := []types.FeeEvent{}
	for rows.Next() {
		var (
			event types.FeeEvent
			mint  string
		)
		if err := rows.Scan(
			&event.Signature,
			&event.Slot,
			&mint,
			&event.Amount,
			&event.Fee,
			&event.Burn,
			&event.Swap,
			&event.Deposit,
			&event.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrScanData, err)
		}

		key, err := solana.PublicKeyFromBase58(mint)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrScanData, err)
		}
		event.Mint = &key
		events = append(events, event)
	}

	return events, rows.Err()
}

func (s *FeeEventStorage) DeleteAll() (int64, error) {
	result, err := s.client.Exec(fmt.Sprintf(`DELETE FROM %s`, TABLE_NAME_FEE_EVENTS))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrExecuteStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrRetrieveRows, err)
	}
	return affected, nil
}
