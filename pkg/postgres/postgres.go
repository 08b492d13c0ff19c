package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DriverName is the database/sql name registered by pgx.
const DriverName = "pgx"

type Config struct {
	Host string
	Port int
	User string
	Pass string
	DB   string
	// SSLMode defaults to "disable".
	SSLMode string
}

func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Pass),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DB,
		RawQuery: "sslmode=" + sslMode,
	}
	return u.String()
}

func Open(cfg Config) (*sql.DB, error) {
	return OpenURL(cfg.DSN())
}

// OpenURL opens a pool and verifies it with a ping.
func OpenURL(dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
