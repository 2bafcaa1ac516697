package repository

import (
	"context"
	"errors"

	"mealboard/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MenuRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMenuRepository(db *pgxpool.Pool, logger *zap.Logger) *MenuRepository {
	return &MenuRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MenuRepository) List(ctx context.Context, householdID uuid.UUID) ([]*models.MenuItem, error) {
	query := squirrel.Select("household_id", "recipe_id", "note", "date", "created_at").
		From("menu_items").
		Where(squirrel.Eq{"household_id": householdID}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(&item.HouseholdID, &item.RecipeID, &item.Note, &item.Date, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *MenuRepository) Get(ctx context.Context, householdID, recipeID uuid.UUID) (*models.MenuItem, error) {
	query := squirrel.Select("household_id", "recipe_id", "note", "date", "created_at").
		From("menu_items").
		Where(squirrel.Eq{"household_id": householdID, "recipe_id": recipeID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var item models.MenuItem
	err = r.db.QueryRow(ctx, sql, args...).Scan(&item.HouseholdID, &item.RecipeID, &item.Note, &item.Date, &item.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) Add(ctx context.Context, item *models.MenuItem) error {
	query := squirrel.Insert("menu_items").
		Columns("household_id", "recipe_id", "note", "date", "created_at").
		Values(item.HouseholdID, item.RecipeID, item.Note, item.Date, item.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *MenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	query := squirrel.Update("menu_items").
		Set("note", item.Note).
		Set("date", item.Date).
		Where(squirrel.Eq{"household_id": item.HouseholdID, "recipe_id": item.RecipeID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *MenuRepository) Remove(ctx context.Context, householdID, recipeID uuid.UUID) error {
	query := squirrel.Delete("menu_items").
		Where(squirrel.Eq{"household_id": householdID, "recipe_id": recipeID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// RecipeIDs returns the ids currently on the household's menu. An unknown
// household yields an empty set, never an error.
func (r *MenuRepository) RecipeIDs(ctx context.Context, householdID uuid.UUID) (map[string]struct{}, error) {
	items, err := r.List(ctx, householdID)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]struct{}, len(items))
	for _, item := range items {
		ids[item.RecipeID.String()] = struct{}{}
	}
	return ids, nil
}
