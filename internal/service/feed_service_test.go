package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"mealboard/internal/models"
	"mealboard/internal/scraper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubDirectory struct {
	household *models.Household
}

func (s stubDirectory) GetByID(context.Context, uuid.UUID) (*models.Household, error) {
	return s.household, nil
}

type stubRecipes struct {
	recipes []*models.Recipe
}

func (s stubRecipes) ListByAuthors(context.Context, []uuid.UUID) ([]*models.Recipe, error) {
	return s.recipes, nil
}

type stubMenu struct {
	ids map[string]struct{}
	err error
}

func (s stubMenu) RecipeIDs(context.Context, uuid.UUID) (map[string]struct{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ids, nil
}

type stubCatalog struct {
	pages  map[scraper.Category][]models.RecipeLite
	byText map[string][]models.RecipeLite
	byTag  map[string][]models.RecipeLite
	err    error
}

func (s *stubCatalog) CategoryPage(_ context.Context, category scraper.Category, _ int) ([]models.RecipeLite, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pages[category], nil
}

func (s *stubCatalog) Search(_ context.Context, text string) ([]models.RecipeLite, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byText[text], nil
}

func (s *stubCatalog) SearchByTag(_ context.Context, tag string) ([]models.RecipeLite, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byTag[tag], nil
}

func newTestFeedService(dir HouseholdDirectory, rec RecipeSource, menu MenuSource, cat Catalog) *FeedService {
	s := NewFeedService(dir, rec, menu, cat, zap.NewNop())
	s.now = func() time.Time { return scoreNow }
	s.newRand = newTestRand
	return s
}

func catalogPage(category scraper.Category, n int) []models.RecipeLite {
	items := make([]models.RecipeLite, n)
	for i := range items {
		link := fmt.Sprintf("https://example.com/%s/%d", category, i)
		items[i] = models.RecipeLite{
			SrcLink: &link,
			Title:   fmt.Sprintf("%s recipe %02d", category, i),
		}
	}
	return items
}

func fullCatalog(n int) *stubCatalog {
	pages := make(map[scraper.Category][]models.RecipeLite, len(scraper.Categories))
	for _, category := range scraper.Categories {
		pages[category] = catalogPage(category, n)
	}
	return &stubCatalog{pages: pages}
}

func feedTitles(feed []models.RecipeLite) map[string]struct{} {
	titles := make(map[string]struct{}, len(feed))
	for _, r := range feed {
		titles[r.Title] = struct{}{}
	}
	return titles
}

func ownedRecipe(title string, tags ...string) *models.Recipe {
	return &models.Recipe{
		ID:       uuid.New(),
		AuthorID: uuid.New(),
		Title:    title,
		Tags:     tags,
	}
}

func testHousehold() *models.Household {
	return &models.Household{ID: uuid.New(), OwnerID: uuid.New()}
}

func TestGetFeedRotationSlices(t *testing.T) {
	household := testHousehold()
	svc := newTestFeedService(
		stubDirectory{household: household},
		stubRecipes{},
		stubMenu{ids: map[string]struct{}{}},
		fullCatalog(50),
	)

	feed, err := svc.GetFeed(context.Background(), household.ID, 0)
	require.NoError(t, err)

	// 20 + 15 + 10 + 5 slots across the four rotation positions.
	assert.Len(t, feed, 50)

	titles := feedTitles(feed)
	for position, category := range scraper.Categories {
		start, end := rotationBounds[position][0], rotationBounds[position][1]
		for i := start; i < end; i++ {
			assert.Contains(t, titles, fmt.Sprintf("%s recipe %02d", category, i))
		}
	}

	for i := 1; i < len(feed); i++ {
		assert.GreaterOrEqual(t, feed[i-1].Score, feed[i].Score)
	}
}

func TestGetFeedRotatesLeadCategory(t *testing.T) {
	household := testHousehold()
	svc := newTestFeedService(
		stubDirectory{household: household},
		stubRecipes{},
		stubMenu{ids: map[string]struct{}{}},
		fullCatalog(50),
	)

	feed, err := svc.GetFeed(context.Background(), household.ID, 1)
	require.NoError(t, err)

	// On page 1 the second category takes the lead position and
	// contributes the wide 0..20 slice.
	titles := feedTitles(feed)
	lead := scraper.Categories[1]
	for i := 0; i < 20; i++ {
		assert.Contains(t, titles, fmt.Sprintf("%s recipe %02d", lead, i))
	}
}

func TestGetFeedDropsShortCategoryPage(t *testing.T) {
	household := testHousehold()
	catalog := fullCatalog(50)
	// The last rotation position needs 50 items; 40 is not enough.
	catalog.pages[scraper.Categories[3]] = catalogPage(scraper.Categories[3], 40)

	svc := newTestFeedService(
		stubDirectory{household: household},
		stubRecipes{},
		stubMenu{ids: map[string]struct{}{}},
		catalog,
	)

	feed, err := svc.GetFeed(context.Background(), household.ID, 0)
	require.NoError(t, err)

	assert.Len(t, feed, 45)
	titles := feedTitles(feed)
	for title := range titles {
		assert.NotContains(t, title, fmt.Sprintf("%s recipe", scraper.Categories[3]))
	}
}

func TestGetFeedTagsOwnedRecipes(t *testing.T) {
	household := testHousehold()
	owned := ownedRecipe("Grandma's Dumplings", "dinner")

	svc := newTestFeedService(
		stubDirectory{household: household},
		stubRecipes{recipes: []*models.Recipe{owned}},
		stubMenu{ids: map[string]struct{}{}},
		fullCatalog(50),
	)

	feed, err := svc.GetFeed(context.Background(), household.ID, 0)
	require.NoError(t, err)

	var found bool
	for _, r := range feed {
		if r.Title == "Grandma's Dumplings" {
			found = true
			assert.Contains(t, r.Tags, "MyRecipes")
			assert.Contains(t, r.Tags, "dinner")
		}
	}
	assert.True(t, found)
}

func TestGetFeedExcludesMenuRecipesAndDuplicates(t *testing.T) {
	household := testHousehold()
	owned := ownedRecipe("Dup")

	catalog := fullCatalog(50)
	// Plant the same title inside a contributing slice of the lead
	// category.
	dupLink := "https://example.com/dup"
	catalog.pages[scraper.Categories[0]][5] = models.RecipeLite{SrcLink: &dupLink, Title: "Dup"}

	svc := newTestFeedService(
		stubDirectory{household: household},
		stubRecipes{recipes: []*models.Recipe{owned}},
		stubMenu{ids: map[string]struct{}{owned.ID.String(): {}}},
		catalog,
	)

	feed, err := svc.GetFeed(context.Background(), household.ID, 0)
	require.NoError(t, err)

	// The owned copy sinks below the threshold on the menu penalty and
	// the external copy collapses in title dedup, so the title is gone
	// entirely.
	assert.NotContains(t, feedTitles(feed), "Dup")
	assert.Len(t, feed, 49)
}

func TestGetFeedDropsCrossCategoryDuplicates(t *testing.T) {
	household := testHousehold()

	catalog := fullCatalog(50)
	// The same dish appears in two contributing category slices. If
	// jitter touched the duplicate score it would survive the feed
	// filter on roughly half the seeds.
	first := "https://example.com/one-pot-pasta"
	second := "https://example.com/one-pot-pasta-again"
	catalog.pages[scraper.Categories[0]][5] = models.RecipeLite{SrcLink: &first, Title: "One Pot Pasta"}
	catalog.pages[scraper.Categories[1]][25] = models.RecipeLite{SrcLink: &second, Title: "One Pot Pasta"}

	svc := newTestFeedService(
		stubDirectory{household: household},
		stubRecipes{},
		stubMenu{ids: map[string]struct{}{}},
		catalog,
	)

	for seed := int64(0); seed < 20; seed++ {
		svc.newRand = func() *rand.Rand { return rand.New(rand.NewSource(seed)) }

		feed, err := svc.GetFeed(context.Background(), household.ID, 0)
		require.NoError(t, err)

		count := 0
		for _, r := range feed {
			if r.Title == "One Pot Pasta" {
				count++
			}
		}
		assert.Equalf(t, 1, count, "seed %d", seed)
		assert.Len(t, feed, 49)
	}
}

func TestGetFeedMenuFailureIsSoft(t *testing.T) {
	household := testHousehold()
	svc := newTestFeedService(
		stubDirectory{household: household},
		stubRecipes{},
		stubMenu{err: errors.New("menu unavailable")},
		fullCatalog(50),
	)

	feed, err := svc.GetFeed(context.Background(), household.ID, 0)
	require.NoError(t, err)
	assert.Len(t, feed, 50)
}

func TestGetFeedUnknownHousehold(t *testing.T) {
	svc := newTestFeedService(
		stubDirectory{},
		stubRecipes{recipes: []*models.Recipe{ownedRecipe("Invisible")}},
		stubMenu{ids: map[string]struct{}{}},
		fullCatalog(50),
	)

	feed, err := svc.GetFeed(context.Background(), uuid.New(), 0)
	require.NoError(t, err)

	// No household means no owned recipes, catalog content only.
	assert.Len(t, feed, 50)
	assert.NotContains(t, feedTitles(feed), "Invisible")
}

func TestSearchRelevanceOrdering(t *testing.T) {
	household := testHousehold()
	owned := ownedRecipe("Chicken Soup", "soup")

	stew := "https://example.com/beef-stew"
	pie := "https://example.com/chicken-pie"
	lentils := "https://example.com/lentils"
	catalog := &stubCatalog{
		byTag: map[string][]models.RecipeLite{
			"soup": {{SrcLink: &stew, Title: "Beef Stew"}},
		},
		byText: map[string][]models.RecipeLite{
			"chicken": {
				{SrcLink: &pie, Title: "Chicken Pie"},
				{SrcLink: &lentils, Title: "Spiced Lentils"},
			},
		},
	}

	svc := newTestFeedService(
		stubDirectory{household: household},
		stubRecipes{recipes: []*models.Recipe{owned}},
		stubMenu{ids: map[string]struct{}{}},
		catalog,
	)

	results, err := svc.Search(context.Background(), household.ID, []string{"chicken"}, []string{"soup"})
	require.NoError(t, err)

	// Keyword+tag beats keyword-only beats tag-only; zero relevance is
	// dropped.
	require.Len(t, results, 3)
	assert.Equal(t, "Chicken Soup", results[0].Title)
	assert.Equal(t, float64(101), results[0].Score)
	assert.Equal(t, "Chicken Pie", results[1].Title)
	assert.Equal(t, float64(100), results[1].Score)
	assert.Equal(t, "Beef Stew", results[2].Title)
	assert.Equal(t, float64(1), results[2].Score)
}

func TestSearchEmptyQuery(t *testing.T) {
	household := testHousehold()
	svc := newTestFeedService(
		stubDirectory{household: household},
		stubRecipes{recipes: []*models.Recipe{ownedRecipe("Chicken Soup")}},
		stubMenu{ids: map[string]struct{}{}},
		&stubCatalog{},
	)

	results, err := svc.Search(context.Background(), household.ID, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchOwnedWinsTitleCollision(t *testing.T) {
	household := testHousehold()
	owned := ownedRecipe("Chicken Soup")

	external := "https://example.com/chicken-soup"
	catalog := &stubCatalog{
		byText: map[string][]models.RecipeLite{
			"chicken": {{SrcLink: &external, Title: "Chicken Soup"}},
		},
	}

	svc := newTestFeedService(
		stubDirectory{household: household},
		stubRecipes{recipes: []*models.Recipe{owned}},
		stubMenu{ids: map[string]struct{}{}},
		catalog,
	)

	results, err := svc.Search(context.Background(), household.ID, []string{"chicken"}, nil)
	require.NoError(t, err)

	require.Len(t, results, 1)
	require.NotNil(t, results[0].ID)
	assert.Equal(t, owned.ID.String(), *results[0].ID)
	assert.Nil(t, results[0].SrcLink)
}

func TestDedupByTitle(t *testing.T) {
	a := models.RecipeLite{Title: "Alpha"}
	b := models.RecipeLite{Title: "Beta"}
	bAgain := models.RecipeLite{Title: "Beta", ImgLink: "other"}
	c := models.RecipeLite{Title: "Gamma"}
	lower := models.RecipeLite{Title: "alpha"}

	merged := dedupByTitle([]models.RecipeLite{a, b}, []models.RecipeLite{bAgain, c, lower})

	// Order preserved, primary wins, matching is case-sensitive.
	require.Len(t, merged, 4)
	assert.Equal(t, "Alpha", merged[0].Title)
	assert.Equal(t, "Beta", merged[1].Title)
	assert.Empty(t, merged[1].ImgLink)
	assert.Equal(t, "Gamma", merged[2].Title)
	assert.Equal(t, "alpha", merged[3].Title)
}

func TestHouseholdRecordsNarrowing(t *testing.T) {
	mine := uuid.New()
	other := uuid.New()
	history := []models.RecipeRecord{
		{HouseholdID: mine, Timestamp: scoreNow.AddDate(0, 0, -1)},
		{HouseholdID: other, Timestamp: scoreNow.AddDate(0, 0, -2)},
		{HouseholdID: mine, Timestamp: scoreNow.AddDate(0, 0, -3)},
	}

	records := householdRecords(history, mine)

	require.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, mine, record.HouseholdID)
	}
}
