package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gatag/api/gaq"
	"gatag/api/models"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore persists tracking profiles and their custom variables in
// PostgreSQL.
type ProfileStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewProfileStore(db *sql.DB, logger *zap.Logger) *ProfileStore {
	return &ProfileStore{db: db, logger: logger}
}

func (s *ProfileStore) CreateProfile(ctx context.Context, userID int, accountID, name string) (*models.Profile, error) {
	p := &models.Profile{UserID: userID, AccountID: accountID, Name: name}
	query := `
		INSERT INTO tracking_profiles (user_id, account_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at;
	`
	if err := s.db.QueryRowContext(ctx, query, userID, accountID, name).Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Info("Tracking profile created",
		zap.Int("profile_id", p.ID),
		zap.Int("user_id", userID),
		zap.String("account_id", accountID))
	return p, nil
}

func (s *ProfileStore) ListProfiles(ctx context.Context, userID int) ([]models.Profile, error) {
	query := `
		SELECT id, user_id, account_id, name, created_at
		FROM tracking_profiles
		WHERE user_id = $1
		ORDER BY id ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.ID, &p.UserID, &p.AccountID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return profiles, nil
}

// GetProfile returns the profile with its custom variables. Profiles owned by
// another user are reported as not found.
func (s *ProfileStore) GetProfile(ctx context.Context, userID, id int) (*models.Profile, error) {
	p := &models.Profile{}
	query := `
		SELECT id, user_id, account_id, name, created_at
		FROM tracking_profiles
		WHERE id = $1 AND user_id = $2;
	`
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(&p.ID, &p.UserID, &p.AccountID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %d: %w", id, ErrProfileNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	vars, err := s.ListCustomVars(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.CustomVars = vars
	return p, nil
}

func (s *ProfileStore) AddCustomVar(ctx context.Context, profileID int, cv gaq.CustomVariable) (*models.CustomVar, error) {
	row := &models.CustomVar{
		ProfileID: profileID,
		Index:     cv.Index,
		Name:      cv.Name,
		Value:     cv.Value,
		Scope:     int(cv.Scope),
	}
	query := `
		INSERT INTO profile_custom_vars (profile_id, slot, name, value, scope)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;
	`
	err := s.db.QueryRowContext(ctx, query, profileID, row.Index, row.Name, row.Value, row.Scope).Scan(&row.ID, &row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add custom var: %w", err)
	}
	return row, nil
}

// ListCustomVars returns the variables in registration order.
func (s *ProfileStore) ListCustomVars(ctx context.Context, profileID int) ([]models.CustomVar, error) {
	query := `
		SELECT id, profile_id, slot, name, value, scope, created_at
		FROM profile_custom_vars
		WHERE profile_id = $1
		ORDER BY id ASC;
	`
	rows, err := s.db.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom vars: %w", err)
	}
	defer rows.Close()

	var vars []models.CustomVar
	for rows.Next() {
		var cv models.CustomVar
		if err := rows.Scan(&cv.ID, &cv.ProfileID, &cv.Index, &cv.Name, &cv.Value, &cv.Scope, &cv.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan custom var: %w", err)
		}
		vars = append(vars, cv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating custom vars: %w", err)
	}
	return vars, nil
}
