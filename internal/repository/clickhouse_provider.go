package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"PowerPos/internal/domain/models"
	drepo "PowerPos/internal/domain/repository"
)

// ClickHouseProvider implements TradeProvider over a ClickHouse trades
// table. Rows are (trade_id, trade_date, period, volume); one Trade is
// reassembled per trade_id, periods in ascending order.
type ClickHouseProvider struct {
	db    *sql.DB
	table string
}

// NewClickHouseProvider creates a ClickHouse-backed trade provider.
func NewClickHouseProvider(db *sql.DB, table string) drepo.TradeProvider {
	return &ClickHouseProvider{db: db, table: table}
}

func (p *ClickHouseProvider) GetTrades(ctx context.Context, date time.Time) ([]*models.Trade, error) {
	q := fmt.Sprintf(
		"SELECT trade_id, period, volume FROM %s WHERE trade_date = ? ORDER BY trade_id, period",
		p.table)

	rows, err := p.db.QueryContext(ctx, q, date.Format("2006-01-02"))
	if err != nil {
		return nil, models.NewProviderError("provider", "query trades: %v", err)
	}
	defer rows.Close()

	var (
		trades  []*models.Trade
		current *models.Trade
		lastID  string
	)
	for rows.Next() {
		var (
			id     string
			period int
			volume float64
		)
		if err := rows.Scan(&id, &period, &volume); err != nil {
			return nil, models.NewProviderError("decode", "scan trade row: %v", err)
		}
		if current == nil || id != lastID {
			current = &models.Trade{Date: date}
			trades = append(trades, current)
			lastID = id
		}
		current.Periods = append(current.Periods, models.Period{Index: period, Volume: volume})
	}
	if err := rows.Err(); err != nil {
		return nil, models.NewProviderError("provider", "read trade rows: %v", err)
	}
	return trades, nil
}

func (p *ClickHouseProvider) Health(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *ClickHouseProvider) Close() error {
	return nil // connection pool managed by pkg/clickhouse
}
