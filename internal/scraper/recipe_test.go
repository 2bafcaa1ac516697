package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipeGraphJSON = `{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "WebPage", "name": "ignored"},
    {
      "@type": ["Recipe"],
      "name": "Skillet &amp; Oven Chicken",
      "image": {"url": "https://img.test/chicken.jpg"},
      "recipeYield": ["4", "4 servings"],
      "totalTime": "PT90M",
      "recipeIngredient": ["0.5 cup butter", "1.25 cups flour", "2 eggs"],
      "recipeInstructions": [
        {"@type": "HowToStep", "text": "Preheat the <b>oven</b>."},
        {"@type": "HowToSection", "itemListElement": [{"@type": "HowToStep", "text": "Sear the chicken."}]},
        {"@type": "HowToTip", "text": "skipped"}
      ]
    }
  ]
}`

func serveRecipe(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><head><script type="application/ld+json">%s</script></head><body></body></html>`, body)
	}))
}

func TestRecipeFromGraph(t *testing.T) {
	srv := serveRecipe(t, recipeGraphJSON)
	defer srv.Close()

	client := newTestClient(srv.URL)
	recipe, err := client.Recipe(context.Background(), srv.URL+"/recipe/1/skillet-chicken/")
	require.NoError(t, err)

	assert.Equal(t, "Skillet & Oven Chicken", recipe.Title)
	assert.Equal(t, "household", recipe.PermissionsRequired)
	assert.Equal(t, "https://img.test/chicken.jpg", recipe.ImgLink)
	require.NotNil(t, recipe.Servings)
	assert.Equal(t, "4", *recipe.Servings)
	assert.Equal(t, []string{"1 hrs 30 mins"}, recipe.TimeEstimate)
	assert.Equal(t, []string{"½ cup butter", "1 ¼ cups flour", "2 eggs"}, recipe.Ingredients)
	assert.Equal(t, []string{"Preheat the oven.", "Sear the chicken."}, recipe.Instructions)
	assert.Equal(t, srv.URL+"/recipe/1/skillet-chicken/", recipe.SrcLink)
	require.NotNil(t, recipe.SrcName)
	assert.Equal(t, "127.0.0.1", *recipe.SrcName)
}

func TestRecipeFromList(t *testing.T) {
	srv := serveRecipe(t, `[{"@type": "Recipe", "name": "Plain Toast", "recipeIngredient": ["1 slice bread"]}]`)
	defer srv.Close()

	client := newTestClient(srv.URL)
	recipe, err := client.Recipe(context.Background(), srv.URL+"/recipe/2/plain-toast/")
	require.NoError(t, err)

	assert.Equal(t, "Plain Toast", recipe.Title)
	assert.Equal(t, []string{"1 slice bread"}, recipe.Ingredients)
	assert.Empty(t, recipe.TimeEstimate)
	assert.Nil(t, recipe.Servings)
}

func TestRecipeNoStructuredData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><h1>Not a recipe</h1></body></html>")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Recipe(context.Background(), srv.URL+"/article/knife-skills/")
	assert.ErrorIs(t, err, ErrNoRecipeData)
}

func TestRecipeUnnamed(t *testing.T) {
	srv := serveRecipe(t, `{"@type": "Recipe", "recipeIngredient": []}`)
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Recipe(context.Background(), srv.URL+"/recipe/3/mystery/")
	assert.ErrorIs(t, err, ErrNoRecipeData)
}

func TestConvertDuration(t *testing.T) {
	tests := []struct {
		iso  string
		want []string
	}{
		{"PT90M", []string{"1 hrs 30 mins"}},
		{"PT45M", []string{"0 hrs 45 mins"}},
		{"PT120M", []string{"2 hrs 0 mins"}},
		{"PT1H30M", []string{}},
		{"", []string{}},
		{"soon", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.iso, func(t *testing.T) {
			assert.Equal(t, tt.want, convertDuration(tt.iso))
		})
	}
}

func TestPrettifyFractions(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"half", "0.5 cup butter", "½ cup butter"},
		{"mixed number", "1.5 cups stock", "1 ½ cups stock"},
		{"quarter", "0.25 tsp salt", "¼ tsp salt"},
		{"three quarters", "2.75 cups flour", "2 ¾ cups flour"},
		{"eighth", "0.125 tsp nutmeg", "⅛ tsp nutmeg"},
		{"third", "0.333 cup milk", "⅓ cup milk"},
		{"two thirds", "0.667 cup cream", "⅔ cup cream"},
		{"no decimal", "2 eggs", "2 eggs"},
		{"unknown decimal", "0.1 tsp ground cloves", ".1 tsp ground cloves"},
		{"two quantities", "0.5 cup sugar plus 0.25 cup more", "½ cup sugar plus ¼ cup more"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrettifyFractions([]string{tt.in})
			assert.Equal(t, []string{tt.want}, got)
		})
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Salt & pepper", cleanText("  <p>Salt &amp; pepper</p> "))
	assert.Equal(t, "ok", cleanText("ok\xff"))
}
