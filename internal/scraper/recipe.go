package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"mealboard/internal/models"

	"github.com/microcosm-cc/bluemonday"
)

var ErrNoRecipeData = errors.New("page carries no recipe structured data")

var stripPolicy = bluemonday.StrictPolicy()

// Recipe fetches a recipe page and extracts a normalized Recipe from its
// JSON-LD structured data block.
func (c *Client) Recipe(ctx context.Context, pageURL string) (*models.Recipe, error) {
	doc, err := c.document(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	raw := doc.Find(`script[type="application/ld+json"]`).First().Text()
	if raw == "" {
		return nil, ErrNoRecipeData
	}

	data, err := recipeNode([]byte(raw))
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		Title:               cleanText(firstString(data["name"])),
		PermissionsRequired: "household",
		Instructions:        extractInstructions(data["recipeInstructions"]),
		ImgLink:             extractImage(data["image"]),
		Servings:            extractServings(data["recipeYield"]),
		TimeEstimate:        convertDuration(firstString(data["totalTime"])),
		SrcLink:             pageURL,
		Ingredients:         PrettifyFractions(stringList(data["recipeIngredient"])),
	}

	if u, err := url.Parse(pageURL); err == nil && u.Hostname() != "" {
		host := u.Hostname()
		recipe.SrcName = &host
	}

	if recipe.Title == "" {
		return nil, ErrNoRecipeData
	}
	return recipe, nil
}

// recipeNode unwraps the three JSON-LD shapes seen in the wild: a bare
// object, a list with the recipe first, and an @graph collection.
func recipeNode(raw []byte) (map[string]any, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("malformed structured data: %w", err)
	}

	switch node := data.(type) {
	case []any:
		if len(node) == 0 {
			return nil, ErrNoRecipeData
		}
		if m, ok := node[0].(map[string]any); ok {
			return m, nil
		}
	case map[string]any:
		graph, ok := node["@graph"].([]any)
		if !ok {
			return node, nil
		}
		for _, entry := range graph {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if firstString(m["@type"]) == "Recipe" {
				return m, nil
			}
		}
	}
	return nil, ErrNoRecipeData
}

func extractInstructions(v any) []string {
	steps, ok := v.([]any)
	if !ok {
		return []string{}
	}

	instructions := make([]string, 0, len(steps))
	for _, raw := range steps {
		step, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		switch firstString(step["@type"]) {
		case "HowToStep":
			if text := cleanText(firstString(step["text"])); text != "" {
				instructions = append(instructions, text)
			}
		case "HowToSection":
			section, ok := firstNode(step["itemListElement"]).(map[string]any)
			if !ok {
				continue
			}
			if text := cleanText(firstString(section["text"])); text != "" {
				instructions = append(instructions, text)
			}
		}
	}
	return instructions
}

func extractImage(v any) string {
	switch img := v.(type) {
	case string:
		return img
	case map[string]any:
		return firstString(img["url"])
	case []any:
		if len(img) > 0 {
			return extractImage(img[0])
		}
	}
	return ""
}

func extractServings(v any) *string {
	if v == nil {
		return nil
	}
	var servings string
	switch y := v.(type) {
	case string:
		servings = y
	case float64:
		servings = strconv.FormatFloat(y, 'f', -1, 64)
	case []any:
		if len(y) == 0 {
			return nil
		}
		return extractServings(y[0])
	default:
		return nil
	}
	if servings == "" {
		return nil
	}
	return &servings
}

// convertDuration turns a minute-only ISO-8601 duration ("PT90M") into the
// single-entry "H hrs M mins" form the menu renders. Anything else is
// treated as unknown.
func convertDuration(iso string) []string {
	if iso == "" {
		return []string{}
	}
	cleaned := strings.NewReplacer("P", "", "T", "", "M", "").Replace(iso)
	minutes, err := strconv.Atoi(cleaned)
	if err != nil {
		return []string{}
	}
	return []string{fmt.Sprintf("%d hrs %d mins", minutes/60, minutes%60)}
}

var decimalPattern = regexp.MustCompile(`\d{1,2}\.\d+`)

// fractionGlyphs maps decimal-part prefixes to vulgar fractions. Order
// matters: longer prefixes shadow shorter ones further down the list.
var fractionGlyphs = []struct {
	prefix string
	glyph  string
}{
	{"5", "½"},
	{"25", "¼"},
	{"75", "¾"},
	{"125", "⅛"},
	{"375", "⅜"},
	{"625", "⅝"},
	{"875", "⅞"},
	{"3", "⅓"},
	{"6", "⅔"},
}

// PrettifyFractions rewrites decimal quantities in ingredient lines as
// vulgar fractions ("0.5 cup" becomes "½ cup").
func PrettifyFractions(ingredients []string) []string {
	for i, line := range ingredients {
		for _, decimal := range decimalPattern.FindAllString(line, -1) {
			parts := strings.SplitN(decimal, ".", 2)
			fraction := fractionize(parts[1])
			if parts[0] != "0" {
				fraction = parts[0] + " " + fraction
			}
			ingredients[i] = strings.Replace(ingredients[i], decimal, strings.TrimSpace(fraction), 1)
		}
	}
	return ingredients
}

func fractionize(decimalPart string) string {
	for _, f := range fractionGlyphs {
		if strings.HasPrefix(decimalPart, f.prefix) {
			return f.glyph
		}
	}
	return "." + decimalPart
}

// firstString digs a usable string out of a JSON-LD value that may be a
// string, a list, or a nested object.
func firstString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		if len(t) > 0 {
			return firstString(t[0])
		}
	}
	return ""
}

func firstNode(v any) any {
	if list, ok := v.([]any); ok {
		if len(list) > 0 {
			return list[0]
		}
		return nil
	}
	return v
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, cleanText(s))
		}
	}
	return out
}

// cleanText strips markup that some sources embed in structured-data text
// and drops invalid UTF-8 so the result can be persisted as-is.
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(sanitizeUTF8(s))))
}

// sanitizeUTF8 removes invalid UTF-8 sequences from string.
// This prevents PostgreSQL encoding errors when saving text.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}
