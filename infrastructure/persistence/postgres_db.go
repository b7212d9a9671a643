package persistence

import (
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"ig-dashboard/infrastructure/configuration"
	"ig-dashboard/infrastructure/logger"

	_ "github.com/lib/pq"
)

// PostgresDSN returns DATABASE_URL when set, otherwise builds a postgres:// URL
// from the discrete settings.
func PostgresDSN(cfg configuration.Database) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	p := cfg.Psql
	u := &url.URL{Scheme: "postgres", Host: fmt.Sprintf("%s:%s", p.Host, p.Port), Path: "/" + p.Name}
	if p.User != "" {
		if p.Password != "" {
			u.User = url.UserPassword(p.User, p.Password)
		} else {
			u.User = url.User(p.User)
		}
	}
	q := url.Values{}
	if p.SSLMode != "" {
		q.Set("sslmode", p.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// NewPostgreSQLDB opens and pings the PostgreSQL store.
func NewPostgreSQLDB() (*sql.DB, error) {
	db, err := sql.Open("postgres", PostgresDSN(configuration.C.Database))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(20 * time.Second)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.GetLogger().WithField("host", configuration.C.Database.Psql.Host).Info("Connected to PostgreSQL")
	return db, nil
}
