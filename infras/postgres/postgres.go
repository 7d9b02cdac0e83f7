package postgres

import (
	"fmt"
	"net"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"loft/config"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
)

// Connection holds separate read and write pools so list-heavy
// endpoints never starve writers.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  connect("read", cfg.DB.Postgres.Read, cfg),
		Write: connect("write", cfg.DB.Postgres.Write, cfg),
	}
}

func dbName(cfg *config.Config, base string) string {
	if cfg.DB.Postgres.Prefix != "" {
		return cfg.DB.Postgres.Prefix + base
	}

	return base
}

func connect(role string, node config.PostgresNode, cfg *config.Config) *sqlx.DB {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		node.Username,
		node.Password,
		net.JoinHostPort(node.Host, node.Port),
		dbName(cfg, node.Name),
		node.SSLMode,
	)

	for attempt := range cfg.DB.Postgres.MaxRetry {
		db, err := sqlx.Connect("postgres", dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)

			log.Info().
				Str("role", role).
				Str("host", node.Host).
				Str("port", node.Port).
				Str("dbName", dbName(cfg, node.Name)).
				Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("role", role).
			Str("host", node.Host).
			Int("attempt", attempt+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second)
	}

	return nil
}
