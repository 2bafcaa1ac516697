package service

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"time"

	"mealboard/internal/models"
	"mealboard/internal/scraper"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Collaborator contracts the feed and search assemblers consume. The
// repositories and the scraper client satisfy them; tests stub them.
type HouseholdDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Household, error)
}

type RecipeSource interface {
	ListByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]*models.Recipe, error)
}

type MenuSource interface {
	RecipeIDs(ctx context.Context, householdID uuid.UUID) (map[string]struct{}, error)
}

type Catalog interface {
	CategoryPage(ctx context.Context, category scraper.Category, pageOffset int) ([]models.RecipeLite, error)
	Search(ctx context.Context, text string) ([]models.RecipeLite, error)
	SearchByTag(ctx context.Context, tag string) ([]models.RecipeLite, error)
}

// rotationBounds are the slice each rotation position contributes to a
// feed page: the lead category fills the first 20 slots, the next 15, then
// 10, then 5. A category page shorter than its upper bound contributes
// nothing for that page.
var rotationBounds = [4][2]int{{0, 20}, {20, 35}, {35, 45}, {45, 50}}

// FeedService assembles the household home feed and search results. It is
// stateless across requests; the clock and the jitter source are injected
// so tests can pin them.
type FeedService struct {
	households HouseholdDirectory
	recipes    RecipeSource
	menu       MenuSource
	catalog    Catalog
	logger     *zap.Logger

	now     func() time.Time
	newRand func() *rand.Rand
}

func NewFeedService(
	households HouseholdDirectory,
	recipes RecipeSource,
	menu MenuSource,
	catalog Catalog,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		households: households,
		recipes:    recipes,
		menu:       menu,
		catalog:    catalog,
		logger:     logger,
		now:        time.Now,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// GetFeed builds one ordered page of the home feed: the household's own
// recipes plus rotating slices of the four external category feeds, scored,
// sorted, and stripped of duplicates and active-menu entries.
func (s *FeedService) GetFeed(ctx context.Context, householdID uuid.UUID, page int) ([]models.RecipeLite, error) {
	owned, err := s.householdRecipes(ctx, householdID)
	if err != nil {
		return nil, err
	}
	for i := range owned {
		owned[i].Tags = append(owned[i].Tags, "MyRecipes")
	}

	menuIDs, err := s.menu.RecipeIDs(ctx, householdID)
	if err != nil {
		// An unknown household simply has no menu exclusions.
		s.logger.Warn("Failed to load menu recipe ids", zap.String("household_id", householdID.String()), zap.Error(err))
		menuIDs = map[string]struct{}{}
	}

	external := s.fetchCategorySlices(ctx, page)

	candidates := dedupByTitle(owned, external)

	// Scoring must run in collection order: the first recipe bearing a
	// title wins, later holders collapse to the duplicate penalty.
	now := s.now()
	rng := s.newRand()
	visited := make(map[string]bool, len(candidates))
	scored := make([]models.RecipeLite, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, scoreRecipe(candidate, menuIDs, visited, now, rng))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	feed := scored[:0]
	for _, recipe := range scored {
		if recipe.Score > feedScoreThreshold {
			feed = append(feed, recipe)
		}
	}
	return feed, nil
}

// fetchCategorySlices pulls one page of each category feed concurrently
// and keeps the slice assigned to its rotation position. Failed or short
// sources contribute nothing.
func (s *FeedService) fetchCategorySlices(ctx context.Context, page int) []models.RecipeLite {
	var pages [4][]models.RecipeLite

	g, gctx := errgroup.WithContext(ctx)
	for position := range scraper.Categories {
		position := position
		category := scraper.Categories[(page+position)%len(scraper.Categories)]
		g.Go(func() error {
			items, err := s.catalog.CategoryPage(gctx, category, page)
			if err != nil {
				s.logger.Warn("Category fetch failed",
					zap.Stringer("category", category),
					zap.Int("page", page),
					zap.Error(err),
				)
				return nil
			}
			pages[position] = items
			return nil
		})
	}
	_ = g.Wait()

	var combined []models.RecipeLite
	for position, items := range pages {
		start, end := rotationBounds[position][0], rotationBounds[position][1]
		if len(items) < end {
			continue
		}
		combined = append(combined, items[start:end]...)
	}
	return combined
}

// Search ranks the household's own recipes and externally fetched
// candidates by relevance to the query's keywords and tags.
func (s *FeedService) Search(ctx context.Context, householdID uuid.UUID, keywords, tags []string) ([]models.RecipeLite, error) {
	owned, err := s.householdRecipes(ctx, householdID)
	if err != nil {
		return nil, err
	}
	for i := range owned {
		owned[i].Score = tagHits(owned[i].Tags, tags) + keywordHits(owned[i].Title, keywords)
	}

	external := s.fetchSearchCandidates(ctx, keywords, tags)

	merged := dedupByTitle(owned, external)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	results := merged[:0]
	for _, recipe := range merged {
		if recipe.Score != 0 {
			results = append(results, recipe)
		}
	}
	return results, nil
}

// fetchSearchCandidates issues one catalog call per requested tag plus a
// free-text call when keywords are present, concurrently and fail-soft.
// Tag hits carry a relevance floor of 1 since the source already filtered
// them; keyword hits stand on their keyword score alone.
func (s *FeedService) fetchSearchCandidates(ctx context.Context, keywords, tags []string) []models.RecipeLite {
	tagResults := make([][]models.RecipeLite, len(tags))
	var keywordResults []models.RecipeLite

	g, gctx := errgroup.WithContext(ctx)
	for i, tag := range tags {
		i, tag := i, tag
		g.Go(func() error {
			items, err := s.catalog.SearchByTag(gctx, tag)
			if err != nil {
				s.logger.Warn("Tag search failed", zap.String("tag", tag), zap.Error(err))
				return nil
			}
			tagResults[i] = items
			return nil
		})
	}
	if len(keywords) > 0 {
		g.Go(func() error {
			items, err := s.catalog.Search(gctx, strings.Join(keywords, " "))
			if err != nil {
				s.logger.Warn("Keyword search failed", zap.Error(err))
				return nil
			}
			keywordResults = items
			return nil
		})
	}
	_ = g.Wait()

	var candidates []models.RecipeLite
	for _, items := range tagResults {
		for _, item := range items {
			item.Score = 1
			if len(keywords) > 0 {
				item.Score += keywordHits(item.Title, keywords)
			}
			candidates = append(candidates, item)
		}
	}
	for _, item := range keywordResults {
		item.Score = keywordHits(item.Title, keywords)
		candidates = append(candidates, item)
	}
	return candidates
}

// householdRecipes projects every recipe owned by a household member,
// with history narrowed to the requesting household's own records. A
// missing household is an empty collection, not an error.
func (s *FeedService) householdRecipes(ctx context.Context, householdID uuid.UUID) ([]models.RecipeLite, error) {
	household, err := s.households.GetByID(ctx, householdID)
	if err != nil {
		return nil, err
	}
	if household == nil {
		return nil, nil
	}

	recipes, err := s.recipes.ListByAuthors(ctx, household.UserIDs())
	if err != nil {
		return nil, err
	}

	lites := make([]models.RecipeLite, 0, len(recipes))
	for _, recipe := range recipes {
		lite := models.MakeRecipeLite(recipe)
		lite.History = householdRecords(recipe.History, householdID)
		lites = append(lites, lite)
	}
	return lites, nil
}

func householdRecords(history []models.RecipeRecord, householdID uuid.UUID) []models.RecipeRecord {
	var records []models.RecipeRecord
	for _, record := range history {
		if record.HouseholdID == householdID {
			records = append(records, record)
		}
	}
	return records
}

// dedupByTitle keeps the primary list intact and appends only secondary
// entries whose exact title has not been seen, preserving secondary order.
// Matching is case-sensitive with no normalization.
func dedupByTitle(primary, secondary []models.RecipeLite) []models.RecipeLite {
	seen := make(map[string]struct{}, len(primary))
	for _, recipe := range primary {
		seen[recipe.Title] = struct{}{}
	}

	merged := make([]models.RecipeLite, 0, len(primary)+len(secondary))
	merged = append(merged, primary...)
	for _, recipe := range secondary {
		if _, ok := seen[recipe.Title]; ok {
			continue
		}
		merged = append(merged, recipe)
	}
	return merged
}
