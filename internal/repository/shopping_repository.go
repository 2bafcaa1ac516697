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

type ShoppingRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewShoppingRepository(db *pgxpool.Pool, logger *zap.Logger) *ShoppingRepository {
	return &ShoppingRepository{
		db:     db,
		logger: logger,
	}
}

var shoppingColumns = []string{
	"id", "household_id", "name", "checked", "time_checked", "user_id", "recipe_id", "created_at",
}

func (r *ShoppingRepository) List(ctx context.Context, householdID uuid.UUID) ([]*models.ShoppingItem, error) {
	query := squirrel.Select(shoppingColumns...).
		From("shopping_items").
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

	var items []*models.ShoppingItem
	for rows.Next() {
		var item models.ShoppingItem
		if err := rows.Scan(
			&item.ID, &item.HouseholdID, &item.Name, &item.Checked,
			&item.TimeChecked, &item.UserID, &item.RecipeID, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *ShoppingRepository) Get(ctx context.Context, householdID, itemID uuid.UUID) (*models.ShoppingItem, error) {
	query := squirrel.Select(shoppingColumns...).
		From("shopping_items").
		Where(squirrel.Eq{"household_id": householdID, "id": itemID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var item models.ShoppingItem
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&item.ID, &item.HouseholdID, &item.Name, &item.Checked,
		&item.TimeChecked, &item.UserID, &item.RecipeID, &item.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ShoppingRepository) Add(ctx context.Context, item *models.ShoppingItem) error {
	return r.AddBatch(ctx, []*models.ShoppingItem{item})
}

func (r *ShoppingRepository) AddBatch(ctx context.Context, items []*models.ShoppingItem) error {
	if len(items) == 0 {
		return nil
	}

	builder := squirrel.Insert("shopping_items").
		Columns(shoppingColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, item := range items {
		builder = builder.Values(
			item.ID, item.HouseholdID, item.Name, item.Checked,
			item.TimeChecked, item.UserID, item.RecipeID, item.CreatedAt,
		)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ShoppingRepository) Update(ctx context.Context, item *models.ShoppingItem) error {
	query := squirrel.Update("shopping_items").
		Set("name", item.Name).
		Set("checked", item.Checked).
		Set("time_checked", item.TimeChecked).
		Set("recipe_id", item.RecipeID).
		Where(squirrel.Eq{"id": item.ID, "household_id": item.HouseholdID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *ShoppingRepository) Remove(ctx context.Context, householdID, itemID uuid.UUID) error {
	query := squirrel.Delete("shopping_items").
		Where(squirrel.Eq{"id": itemID, "household_id": householdID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// RemoveCheckedBefore drops items that were checked off before the cutoff.
func (r *ShoppingRepository) RemoveCheckedBefore(ctx context.Context, householdID uuid.UUID, cutoff time.Time) error {
	query := squirrel.Delete("shopping_items").
		Where(squirrel.Eq{"household_id": householdID, "checked": true}).
		Where(squirrel.Lt{"time_checked": cutoff}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
