package repository

import (
	"context"

	"mealboard/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type RecipeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRecipeRepository(db *pgxpool.Pool, logger *zap.Logger) *RecipeRepository {
	return &RecipeRepository{
		db:     db,
		logger: logger,
	}
}

var recipeColumns = []string{
	"id", "author_id", "title", "permissions_required", "instructions",
	"img_link", "servings", "time_estimate", "src_link", "src_name",
	"ingredients", "tags", "created_at", "updated_at",
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	query := squirrel.Insert("recipes").
		Columns(recipeColumns...).
		Values(
			recipe.ID, recipe.AuthorID, recipe.Title, recipe.PermissionsRequired,
			recipe.Instructions, recipe.ImgLink, recipe.Servings, recipe.TimeEstimate,
			recipe.SrcLink, recipe.SrcName, recipe.Ingredients, recipe.Tags,
			recipe.CreatedAt, recipe.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *RecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	query := squirrel.Update("recipes").
		Set("title", recipe.Title).
		Set("permissions_required", recipe.PermissionsRequired).
		Set("instructions", recipe.Instructions).
		Set("img_link", recipe.ImgLink).
		Set("servings", recipe.Servings).
		Set("time_estimate", recipe.TimeEstimate).
		Set("src_link", recipe.SrcLink).
		Set("src_name", recipe.SrcName).
		Set("ingredients", recipe.Ingredients).
		Set("tags", recipe.Tags).
		Set("updated_at", recipe.UpdatedAt).
		Where(squirrel.Eq{"id": recipe.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *RecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	recipes, err := r.list(ctx, squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, nil
	}
	return recipes[0], nil
}

// ListByAuthors returns every recipe owned by any of the given users,
// with its usage history attached.
func (r *RecipeRepository) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]*models.Recipe, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	return r.list(ctx, squirrel.Eq{"author_id": authorIDs})
}

func (r *RecipeRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	query := squirrel.Select("COUNT(*)").
		From("recipes").
		Where(squirrel.Eq{"author_id": authorID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *RecipeRepository) AddRecord(ctx context.Context, record *models.RecipeRecord) error {
	query := squirrel.Insert("recipe_records").
		Columns("recipe_id", "household_id", "timestamp", "rating").
		Values(record.RecipeID, record.HouseholdID, record.Timestamp, record.Rating).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *RecipeRepository) list(ctx context.Context, pred squirrel.Eq) ([]*models.Recipe, error) {
	query := squirrel.Select(recipeColumns...).
		From("recipes").
		Where(pred).
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

	var recipes []*models.Recipe
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var recipe models.Recipe
		if err := rows.Scan(
			&recipe.ID, &recipe.AuthorID, &recipe.Title, &recipe.PermissionsRequired,
			&recipe.Instructions, &recipe.ImgLink, &recipe.Servings, &recipe.TimeEstimate,
			&recipe.SrcLink, &recipe.SrcName, &recipe.Ingredients, &recipe.Tags,
			&recipe.CreatedAt, &recipe.UpdatedAt,
		); err != nil {
			return nil, err
		}
		recipes = append(recipes, &recipe)
		ids = append(ids, recipe.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachHistory(ctx, recipes, ids); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *RecipeRepository) attachHistory(ctx context.Context, recipes []*models.Recipe, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query := squirrel.Select("recipe_id", "household_id", "timestamp", "rating").
		From("recipe_records").
		Where(squirrel.Eq{"recipe_id": ids}).
		OrderBy("timestamp ASC").
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

	history := make(map[uuid.UUID][]models.RecipeRecord)
	for rows.Next() {
		var record models.RecipeRecord
		if err := rows.Scan(&record.RecipeID, &record.HouseholdID, &record.Timestamp, &record.Rating); err != nil {
			return err
		}
		history[record.RecipeID] = append(history[record.RecipeID], record)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, recipe := range recipes {
		recipe.History = history[recipe.ID]
	}
	return nil
}
