package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitQuery(t *testing.T) {
	keywords, tags := SplitQuery("chicken #soup quick #Vegetarian")

	assert.Equal(t, []string{"chicken", "quick"}, keywords)
	assert.Equal(t, []string{"soup", "Vegetarian"}, tags)
}

func TestSplitQueryEmpty(t *testing.T) {
	keywords, tags := SplitQuery("   ")

	assert.Empty(t, keywords)
	assert.Empty(t, tags)
}

func TestSplitQueryBareHash(t *testing.T) {
	keywords, tags := SplitQuery("# steak")

	assert.Equal(t, []string{"steak"}, keywords)
	assert.Empty(t, tags)
}

func TestKeywordHits(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		keywords []string
		want     float64
	}{
		{"token inside title", "Chicken Noodle Soup", []string{"noodle"}, 100},
		{"title inside token", "Pho", []string{"photograph"}, 100},
		{"case insensitive", "CHICKEN soup", []string{"Chicken"}, 100},
		{"two hits", "Chicken Soup", []string{"chicken", "soup"}, 200},
		{"no hit", "Beef Stew", []string{"chicken"}, 0},
		{"no keywords", "Beef Stew", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keywordHits(tt.title, tt.keywords))
		})
	}
}

func TestTagHits(t *testing.T) {
	tests := []struct {
		name       string
		recipeTags []string
		queryTags  []string
		want       float64
	}{
		{"single match", []string{"soup", "dinner"}, []string{"soup"}, 1},
		{"case insensitive", []string{"Soup"}, []string{"sOuP"}, 1},
		{"two matches", []string{"soup", "quick"}, []string{"quick", "soup"}, 2},
		{"no recipe tags", nil, []string{"soup"}, 0},
		{"no query tags", []string{"soup"}, nil, 0},
		{"disjoint", []string{"dessert"}, []string{"soup"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tagHits(tt.recipeTags, tt.queryTags))
		})
	}
}
