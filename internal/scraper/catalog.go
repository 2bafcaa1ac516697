package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"mealboard/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// Category identifies one of the external catalog's browse feeds. A fixed
// enum instead of raw tag strings keeps the dispatch checked at compile time.
type Category int

const (
	CategoryMainDishes Category = iota
	CategorySoups
	CategoryBreakfasts
	CategoryDesserts
)

// Categories lists every browse feed in the order the home feed rotates them.
var Categories = [4]Category{CategoryMainDishes, CategorySoups, CategoryBreakfasts, CategoryDesserts}

func (c Category) String() string {
	switch c {
	case CategoryMainDishes:
		return "main-dishes"
	case CategorySoups:
		return "soups"
	case CategoryBreakfasts:
		return "breakfasts"
	case CategoryDesserts:
		return "desserts"
	}
	return "unknown"
}

func (c Category) path() string {
	switch c {
	case CategoryMainDishes:
		return "/recipes/80/main-dish/"
	case CategorySoups:
		return "/recipes/94/soups-stews-and-chili/"
	case CategoryBreakfasts:
		return "/recipes/78/breakfast-and-brunch/"
	case CategoryDesserts:
		return "/recipes/79/desserts/"
	}
	return "/recipes/"
}

const (
	categoryCardClass = "mntl-document-card"
	searchCardClass   = "mntl-card-list-card--extendable"
)

// CategoryPage returns up to 50 recipe cards from one browse feed. Fewer
// than 50 cards means the source is exhausted at this offset.
func (c *Client) CategoryPage(ctx context.Context, category Category, pageOffset int) ([]models.RecipeLite, error) {
	pageURL := c.baseURL + category.path()
	if pageOffset > 0 {
		pageURL = fmt.Sprintf("%s?page=%d", pageURL, pageOffset)
	}
	return c.cards(ctx, pageURL, categoryCardClass)
}

// Search scrapes the catalog's free-text search results.
func (c *Client) Search(ctx context.Context, text string) ([]models.RecipeLite, error) {
	query := url.Values{"q": {text}}
	return c.cards(ctx, c.baseURL+"/search?"+query.Encode(), searchCardClass)
}

// SearchByTag reuses the search page; the catalog has no dedicated tag
// endpoint, so the tag itself is the query.
func (c *Client) SearchByTag(ctx context.Context, tag string) ([]models.RecipeLite, error) {
	return c.Search(ctx, tag)
}

func (c *Client) cards(ctx context.Context, pageURL, cardClass string) ([]models.RecipeLite, error) {
	doc, err := c.document(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var recipes []models.RecipeLite
	doc.Find("a." + cardClass).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if !strings.Contains(href, "/recipe/") && !strings.Contains(href, "-recipe-") {
			return
		}
		recipes = append(recipes, parseCard(s, href))
	})
	return recipes, nil
}

func parseCard(s *goquery.Selection, href string) models.RecipeLite {
	lite := models.RecipeLite{SrcLink: &href}

	lite.Title = strings.TrimSpace(s.Find("span.card__title").Text())

	if stars := s.Find("svg.icon-star").Length(); stars > 0 {
		rate := float64(stars)
		if s.Find("svg.icon-star-half").Length() > 0 {
			rate += 0.5
		}
		lite.Rate = &rate
	}

	img := s.Find("img").First()
	if src, ok := img.Attr("data-src"); ok {
		lite.ImgLink = src
	} else if src, ok := img.Attr("src"); ok {
		lite.ImgLink = src
	}

	return lite
}
