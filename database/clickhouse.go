package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"

	"gatag/api/config"
)

type ClickHouseClient struct {
	Conn   clickhouse.Conn
	logger *zap.Logger
}

func NewClickHouseDB(cfg config.ClickHouseConfig, logger *zap.Logger) (*ClickHouseClient, error) {
	options := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.NativePort)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		ClientInfo: clickhouse.ClientInfo{
			Products: []struct {
				Name    string
				Version string
			}{{Name: "gatag-api", Version: "1.0.0"}},
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		DialTimeout: time.Second * 5,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse via Native TCP: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	logger.Info("Connected to ClickHouse database via Native TCP", zap.String("host", cfg.Host), zap.Int("port", cfg.NativePort))
	return &ClickHouseClient{Conn: conn, logger: logger}, nil
}

const snippetRendersTable = `
	CREATE TABLE IF NOT EXISTS snippet_renders (
		event_id String,
		kind LowCardinality(String),
		account_id String,
		user_id String,
		timestamp DateTime64(3, 'UTC'),
		ip_address String,
		user_agent String,
		wrapped UInt8,
		code_bytes UInt32
	) ENGINE = MergeTree
	ORDER BY (kind, timestamp)
`

// MigrateClickHouse creates the snippet_renders table.
func MigrateClickHouse(ctx context.Context, conn clickhouse.Conn) error {
	if err := conn.Exec(ctx, snippetRendersTable); err != nil {
		return fmt.Errorf("failed to create snippet_renders table: %w", err)
	}
	return nil
}

func (c *ClickHouseClient) Close() {
	if c.Conn != nil {
		c.Conn.Close()
		c.logger.Info("ClickHouse connection closed")
	}
}
