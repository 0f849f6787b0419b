package postgres

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/cschleeper/hotel-rating-tool/internal/config"
)

var (
	mu     sync.RWMutex
	handle *sqlx.DB
)

// DB returns the current connection handle. It stays nil until a connection
// attempt succeeds, including background reconnects, so callers must resolve
// it per use rather than capture it at startup.
func DB() *sqlx.DB {
	mu.RLock()
	defer mu.RUnlock()
	return handle
}

func setHandle(db *sqlx.DB) {
	mu.Lock()
	handle = db
	mu.Unlock()
}

// ConnectAndCreateDB connects to the server's maintenance database, creates
// the quote database if missing, then connects to it and applies schema.sql
// on first creation.
func ConnectAndCreateDB(cfg config.PostgresConfig) (*sqlx.DB, error) {
	defaultConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	log.Printf("Connecting to PostgreSQL: host=%s, port=%s, user=%s, target db=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.DBname)

	defaultDB, err := sql.Open("postgres", defaultConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to default postgres db: %w", err)
	}
	defer defaultDB.Close()

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)`
	if err := defaultDB.QueryRow(checkQuery, cfg.DBname).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check if database exists: %w", err)
	}

	if !exists {
		if _, err := defaultDB.Exec(fmt.Sprintf(`CREATE DATABASE "%s"`, cfg.DBname)); err != nil {
			return nil, fmt.Errorf("failed to create database %s: %w", cfg.DBname, err)
		}
		log.Printf("Database '%s' created", cfg.DBname)
	}

	targetConnStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBname)

	db, err := sqlx.Connect("postgres", targetConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to target database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping target database: %w", err)
	}

	if !exists {
		if err := executeSchema(db); err != nil {
			// Leave schema application to the operator rather than failing.
			log.Printf("Warning: failed to execute schema.sql: %v", err)
		}
	}

	setHandle(db)
	return db, nil
}

// executeSchema reads schema.sql from a known location and applies it
// statement by statement, continuing past individual failures.
func executeSchema(db *sqlx.DB) error {
	locations := []string{"schema.sql", "./schema.sql", "/app/schema.sql"}

	var schemaPath string
	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			schemaPath = loc
			break
		}
	}
	if schemaPath == "" {
		return fmt.Errorf("schema.sql not found in any of: %v", locations)
	}

	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", schemaPath, err)
	}

	log.Printf("Executing schema from: %s", schemaPath)

	success := 0
	for i, statement := range strings.Split(string(content), ";") {
		statement = strings.TrimSpace(statement)
		if statement == "" || strings.HasPrefix(statement, "--") {
			continue
		}
		if _, err := db.Exec(statement); err != nil {
			log.Printf("Warning: failed to execute statement %d: %v", i+1, err)
			continue
		}
		success++
	}

	log.Printf("Schema execution completed, %d statements applied", success)
	return nil
}

// RetryConnectOnFailed loops until the quote database connection is restored.
// A successful reconnect updates the package handle, so anything resolving
// the connection through DB() recovers without a restart.
func RetryConnectOnFailed(wait time.Duration, cfg config.PostgresConfig) {
	for {
		if db := DB(); db != nil {
			err := db.Ping()
			if err == nil {
				log.Printf("database connection is healthy, no retry needed")
				return
			}
			log.Printf("lost database connection, retrying: %s", err)
			setHandle(nil)
		}

		if _, err := ConnectAndCreateDB(cfg); err != nil {
			log.Printf("failed to reconnect database: %s, next retry in %v", err, wait)
			time.Sleep(wait)
			continue
		}

		log.Printf("database retry connection succeeded")
		return
	}
}
