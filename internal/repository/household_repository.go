package repository

import (
	"context"
	"errors"
	"time"

	"mealboard/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type HouseholdRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewHouseholdRepository(db *pgxpool.Pool, logger *zap.Logger) *HouseholdRepository {
	return &HouseholdRepository{
		db:     db,
		logger: logger,
	}
}

func (r *HouseholdRepository) Create(ctx context.Context, household *models.Household) error {
	query := squirrel.Insert("households").
		Columns("id", "owner_id", "join_code", "join_code_expires_at", "created_at", "updated_at").
		Values(household.ID, household.OwnerID, household.JoinCode, household.JoinCodeExpiresAt, household.CreatedAt, household.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *HouseholdRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Household, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// FindByUser returns the household the user owns or belongs to, or nil.
func (r *HouseholdRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Household, error) {
	query := squirrel.Select("h.id").
		From("households h").
		LeftJoin("household_members m ON m.household_id = h.id").
		Where(squirrel.Or{
			squirrel.Eq{"h.owner_id": userID},
			squirrel.Eq{"m.user_id": userID},
		}).
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// GetByJoinCode looks up the household holding a join code. Expiry is
// the service's concern.
func (r *HouseholdRepository) GetByJoinCode(ctx context.Context, code string) (*models.Household, error) {
	household, err := r.getOne(ctx, squirrel.Eq{"join_code": code})
	if err != nil {
		return nil, err
	}
	return household, nil
}

func (r *HouseholdRepository) UpdateJoinCode(ctx context.Context, id uuid.UUID, code *string, expiresAt *time.Time) error {
	query := squirrel.Update("households").
		Set("join_code", code).
		Set("join_code_expires_at", expiresAt).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *HouseholdRepository) AddMember(ctx context.Context, householdID, userID uuid.UUID) error {
	query := squirrel.Insert("household_members").
		Columns("household_id", "user_id").
		Values(householdID, userID).
		Suffix("ON CONFLICT DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *HouseholdRepository) RemoveMember(ctx context.Context, householdID, userID uuid.UUID) error {
	query := squirrel.Delete("household_members").
		Where(squirrel.Eq{"household_id": householdID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *HouseholdRepository) UpdateOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	query := squirrel.Update("households").
		Set("owner_id", ownerID).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *HouseholdRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := squirrel.Delete("households").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *HouseholdRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.Household, error) {
	query := squirrel.Select("id", "owner_id", "join_code", "join_code_expires_at", "created_at", "updated_at").
		From("households").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var household models.Household
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&household.ID, &household.OwnerID, &household.JoinCode, &household.JoinCodeExpiresAt,
		&household.CreatedAt, &household.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadMembers(ctx, &household); err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *HouseholdRepository) loadMembers(ctx context.Context, household *models.Household) error {
	query := squirrel.Select("user_id").
		From("household_members").
		Where(squirrel.Eq{"household_id": household.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			return err
		}
		household.Members = append(household.Members, userID)
	}
	return rows.Err()
}
