package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mealboard/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.CatalogConfig{
		BaseURL:      baseURL,
		UserAgent:    "mealboard-test",
		FetchTimeout: 5 * time.Second,
	}, zap.NewNop())
}

const categoryPageHTML = `<html><body>
<a class="mntl-document-card" href="https://catalog.test/recipe/123/roast-chicken/">
  <img data-src="https://img.test/roast.jpg" src="placeholder.gif">
  <span class="card__title">Roast Chicken</span>
  <svg class="icon-star"></svg><svg class="icon-star"></svg><svg class="icon-star"></svg><svg class="icon-star"></svg>
  <svg class="icon-star-half"></svg>
</a>
<a class="mntl-document-card" href="https://catalog.test/article/55/knife-skills/">
  <span class="card__title">Knife Skills</span>
</a>
<a class="mntl-document-card" href="https://catalog.test/best-soup-recipe-8372/">
  <img src="https://img.test/soup.jpg">
  <span class="card__title">Best Soup</span>
</a>
</body></html>`

func TestCategoryPage(t *testing.T) {
	var gotPath, gotUA, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		gotCookie = r.Header.Get("Cookie")
		fmt.Fprint(w, categoryPageHTML)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	cards, err := client.CategoryPage(context.Background(), CategoryMainDishes, 0)
	require.NoError(t, err)

	assert.Equal(t, "/recipes/80/main-dish/", gotPath)
	assert.Equal(t, "mealboard-test", gotUA)
	assert.Equal(t, "euConsent=true", gotCookie)

	// The article link carries no recipe marker and is skipped.
	require.Len(t, cards, 2)

	assert.Equal(t, "Roast Chicken", cards[0].Title)
	require.NotNil(t, cards[0].SrcLink)
	assert.Equal(t, "https://catalog.test/recipe/123/roast-chicken/", *cards[0].SrcLink)
	assert.Equal(t, "https://img.test/roast.jpg", cards[0].ImgLink)
	require.NotNil(t, cards[0].Rate)
	assert.Equal(t, 4.5, *cards[0].Rate)

	assert.Equal(t, "Best Soup", cards[1].Title)
	assert.Equal(t, "https://img.test/soup.jpg", cards[1].ImgLink)
	assert.Nil(t, cards[1].Rate)
}

func TestCategoryPageOffset(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, "<html></html>")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.CategoryPage(context.Background(), CategorySoups, 2)
	require.NoError(t, err)

	assert.Equal(t, "page=2", gotQuery)
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "chicken soup", r.URL.Query().Get("q"))
		fmt.Fprint(w, `<html><body>
<a class="mntl-card-list-card--extendable" href="https://catalog.test/recipe/9/chicken-soup/">
  <span class="card__title">Chicken Soup</span>
</a>
</body></html>`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	cards, err := client.Search(context.Background(), "chicken soup")
	require.NoError(t, err)

	require.Len(t, cards, 1)
	assert.Equal(t, "Chicken Soup", cards[0].Title)
}

func TestSearchByTagUsesSearchPage(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, "<html></html>")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.SearchByTag(context.Background(), "vegetarian")
	require.NoError(t, err)

	assert.Equal(t, "vegetarian", gotQuery)
}

func TestCategoryPageBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.CategoryPage(context.Background(), CategoryDesserts, 0)
	assert.Error(t, err)
}
