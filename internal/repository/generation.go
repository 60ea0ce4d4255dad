package repository

import (
	"context"
	"database/sql"

	"github.com/vaultpass/passgen/internal/model"
)

const schemaQuery = `
	CREATE TABLE IF NOT EXISTS generations (
		id         BIGINT AUTO_INCREMENT PRIMARY KEY,
		length     INT NOT NULL,
		uppercase  BOOLEAN NOT NULL,
		lowercase  BOOLEAN NOT NULL,
		numbers    BOOLEAN NOT NULL,
		symbols    BOOLEAN NOT NULL,
		strength   VARCHAR(16) NOT NULL,
		entropy    VARCHAR(16) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_generations_created_at (created_at)
	)`

// GenerationRepository persists generation metadata.
type GenerationRepository struct {
	db *sql.DB
}

// NewGenerationRepository creates a new GenerationRepository.
func NewGenerationRepository(db *sql.DB) *GenerationRepository {
	return &GenerationRepository{db: db}
}

// EnsureSchema creates the generations table if it does not exist.
func (r *GenerationRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schemaQuery)
	return err
}

// Create inserts a record and sets its generated ID.
func (r *GenerationRepository) Create(ctx context.Context, rec *model.GenerationRecord) error {
	query := `INSERT INTO generations (length, uppercase, lowercase, numbers, symbols, strength, entropy)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		rec.Length, rec.Uppercase, rec.Lowercase, rec.Numbers, rec.Symbols, rec.Strength, rec.Entropy,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	rec.ID = id
	return nil
}

// ListRecent returns up to limit records, newest first.
func (r *GenerationRepository) ListRecent(ctx context.Context, limit int) ([]model.GenerationRecord, error) {
	query := `SELECT id, length, uppercase, lowercase, numbers, symbols, strength, entropy, created_at
		FROM generations ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]model.GenerationRecord, 0, limit)
	for rows.Next() {
		var rec model.GenerationRecord
		if err := rows.Scan(
			&rec.ID, &rec.Length, &rec.Uppercase, &rec.Lowercase, &rec.Numbers,
			&rec.Symbols, &rec.Strength, &rec.Entropy, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
