package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/jobboard/internal/profile"
	"github.com/jonathan/jobboard/internal/types"
)

const selectProfile = `SELECT id, name, email, phone, role, bio, city, country,
	experience, education, projects, skills, version, created_at, updated_at
	FROM users WHERE id = $1`

// DefaultRole is assigned to users created without one.
const DefaultRole = "Job Seeker"

// GetProfile retrieves a user profile by ID. Returns nil, nil if not found.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.UserProfile, error) {
	var p types.UserProfile
	var experience, education, projects, sk []byte
	err := db.pool.QueryRow(ctx, selectProfile, userID).Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone, &p.Role, &p.Bio,
		&p.Location.City, &p.Location.Country,
		&experience, &education, &projects, &sk,
		&p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	sections := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"experience", experience, &p.Experience},
		{"education", education, &p.Education},
		{"projects", projects, &p.Projects},
		{"skills", sk, &p.Skills},
	}
	for _, s := range sections {
		if err := json.Unmarshal(s.raw, s.dst); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", s.name, err)
		}
	}
	return &p, nil
}

// SaveProfile writes p when the stored version still matches p.Version.
// On success p.Version and p.UpdatedAt reflect the new row.
func (db *DB) SaveProfile(ctx context.Context, p *types.UserProfile) error {
	experience, err := marshalSection(p.Experience)
	if err != nil {
		return err
	}
	education, err := marshalSection(p.Education)
	if err != nil {
		return err
	}
	projects, err := marshalSection(p.Projects)
	if err != nil {
		return err
	}
	sk, err := marshalSection(p.Skills)
	if err != nil {
		return err
	}

	err = db.pool.QueryRow(ctx,
		`UPDATE users SET
			name = $3, phone = $4, role = $5, bio = $6, city = $7, country = $8,
			experience = $9, education = $10, projects = $11, skills = $12,
			email = COALESCE(NULLIF($13, ''), email),
			version = version + 1, updated_at = NOW()
		 WHERE id = $1 AND version = $2
		 RETURNING version, updated_at`,
		p.ID, p.Version,
		p.Name, p.Phone, p.Role, p.Bio, p.Location.City, p.Location.Country,
		experience, education, projects, sk, p.Email,
	).Scan(&p.Version, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.saveMiss(ctx, p.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// saveMiss tells a missing row apart from a stale version.
func (db *DB) saveMiss(ctx context.Context, userID uuid.UUID) error {
	var exists bool
	err := db.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check profile: %w", err)
	}
	if !exists {
		return &profile.NotFoundError{UserID: userID}
	}
	return profile.ErrVersionConflict
}

// CreateUser inserts a user with empty profile sections and returns its ID.
func (db *DB) CreateUser(ctx context.Context, name, email, phone string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, phone, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		name, email, phone, DefaultRole,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// DeleteUser removes a user
func (db *DB) DeleteUser(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// marshalSection encodes a section for a JSONB column; nil becomes [].
func marshalSection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal section: %w", err)
	}
	return b, nil
}
