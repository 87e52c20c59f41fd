package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gatag/api/database"
	"gatag/api/models"
	"gatag/api/utils"
)

// RenderStore records generated snippets in ClickHouse and aggregates them.
type RenderStore struct {
	DB     *database.ClickHouseClient
	logger *zap.Logger
}

func NewRenderStore(chClient *database.ClickHouseClient, logger *zap.Logger) *RenderStore {
	return &RenderStore{
		DB:     chClient,
		logger: logger,
	}
}

func (s *RenderStore) InsertRenderEvents(ctx context.Context, events []models.RenderEvent) error {
	if len(events) == 0 {
		return nil
	}

	// Column order must match the snippet_renders schema.
	batch, err := s.DB.Conn.PrepareBatch(ctx, `
		INSERT INTO snippet_renders (
			event_id, kind, account_id, user_id, timestamp, ip_address, user_agent, wrapped, code_bytes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare batch insert: %w", err)
	}

	for _, event := range events {
		var wrapped uint8
		if event.Wrapped {
			wrapped = 1
		}
		err := batch.Append(
			event.EventID,
			event.Kind,
			event.AccountID,
			event.UserID,
			event.Timestamp,
			event.IPAddress,
			event.UserAgent,
			wrapped,
			event.CodeBytes,
		)
		if err != nil {
			if abortErr := batch.Abort(); abortErr != nil {
				s.logger.Warn("Failed to abort render batch", zap.Error(abortErr))
			}
			return fmt.Errorf("failed to append render event %s: %w", event.EventID, err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	s.logger.Debug("Inserted render events", zap.Int("count", len(events)))
	return nil
}

// renderCountsQuery builds the bucketed count query. When kind is set the
// result is grouped per kind as well.
func renderCountsQuery(interval, kind string) (string, error) {
	if !utils.IsValidInterval(interval) {
		return "", fmt.Errorf("invalid interval: %s", interval)
	}

	selectCols := fmt.Sprintf("toStartOf%s(timestamp) AS time_bucket, count() AS total", interval)
	groupByCols := "time_bucket"
	whereClause := "WHERE timestamp >= ? AND timestamp <= ?"
	orderByCols := "time_bucket ASC"

	if kind != "" {
		selectCols += ", kind"
		groupByCols += ", kind"
		whereClause += " AND kind = ?"
		orderByCols += ", kind ASC"
	}

	return fmt.Sprintf(`
		SELECT %s
		FROM snippet_renders
		%s
		GROUP BY %s
		ORDER BY %s
	`, selectCols, whereClause, groupByCols, orderByCols), nil
}

func (s *RenderStore) GetRenderCountsOverTime(ctx context.Context, interval string, start, end time.Time, kind string) ([]models.RenderCountByTime, error) {
	query, err := renderCountsQuery(interval, kind)
	if err != nil {
		return nil, err
	}
	args := []interface{}{start, end}
	if kind != "" {
		args = append(args, kind)
	}

	rows, err := s.DB.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query render counts over time: %w", err)
	}
	defer rows.Close()

	results := []models.RenderCountByTime{}
	for rows.Next() {
		var (
			result models.RenderCountByTime
			kindDB string
		)
		if kind != "" {
			if err := rows.Scan(&result.Time, &result.Count, &kindDB); err != nil {
				s.logger.Warn("Error scanning render count row", zap.Error(err))
				continue
			}
			result.Kind = &kindDB
		} else if err := rows.Scan(&result.Time, &result.Count); err != nil {
			s.logger.Warn("Error scanning render count row", zap.Error(err))
			continue
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during render counts query: %w", err)
	}
	return results, nil
}

func (s *RenderStore) GetTopAccounts(ctx context.Context, start, end time.Time, limit uint64) ([]models.TopAccountResult, error) {
	if limit == 0 {
		limit = 10
	}

	query := `
		SELECT account_id, count() AS renders
		FROM snippet_renders
		WHERE account_id != '' AND timestamp >= ? AND timestamp <= ?
		GROUP BY account_id
		ORDER BY renders DESC
		LIMIT ?
	`
	rows, err := s.DB.Conn.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top accounts: %w", err)
	}
	defer rows.Close()

	results := []models.TopAccountResult{}
	for rows.Next() {
		var r models.TopAccountResult
		if err := rows.Scan(&r.AccountID, &r.Count); err != nil {
			s.logger.Warn("Error scanning top account row", zap.Error(err))
			continue
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for top accounts: %w", err)
	}
	return results, nil
}
