package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/ozanguner/hybrid-recommender/internal/models"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Table    string
}

// PostgresEventSource reads the prepared event table from Postgres.
type PostgresEventSource struct {
	db    *sql.DB
	table string
}

func NewPostgresEventSource(config DatabaseConfig) (*PostgresEventSource, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	table := config.Table
	if table == "" {
		table = "events"
	}

	return &PostgresEventSource{db: db, table: table}, nil
}

func (s *PostgresEventSource) LoadEvents(ctx context.Context) ([]models.Event, error) {
	query := fmt.Sprintf(`
		SELECT sessionid, productid, eventtime, category, brand, name
		FROM %s
		ORDER BY eventtime`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		var brand, name sql.NullString
		if err := rows.Scan(
			&e.SessionID,
			&e.ProductID,
			&e.EventTime,
			&e.Category,
			&brand,
			&name,
		); err != nil {
			return nil, fmt.Errorf("error scanning event: %w", err)
		}
		e.Brand = brand.String
		e.Name = name.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

func (s *PostgresEventSource) Close() error {
	return s.db.Close()
}
