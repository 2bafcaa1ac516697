package service

import "strings"

// keywordWeight keeps any keyword match above any pure tag match, so
// results order as keyword+tag, then keyword-only, then tag-only.
const keywordWeight = 100

// keywordHits counts query tokens that match the title in either
// direction (token inside title, or title inside token), case-insensitive,
// weighted so keyword relevance dominates tag relevance.
func keywordHits(title string, keywords []string) float64 {
	lowerTitle := strings.ToLower(title)

	hits := 0
	for _, kw := range keywords {
		token := strings.ToLower(kw)
		if strings.Contains(lowerTitle, token) || strings.Contains(token, lowerTitle) {
			hits++
		}
	}
	return float64(hits * keywordWeight)
}

// tagHits counts how many of the recipe's tags appear in the requested tag
// set, case-insensitive, unweighted.
func tagHits(recipeTags, queryTags []string) float64 {
	if len(recipeTags) == 0 || len(queryTags) == 0 {
		return 0
	}

	requested := make(map[string]struct{}, len(queryTags))
	for _, tag := range queryTags {
		requested[strings.ToLower(tag)] = struct{}{}
	}

	hits := 0
	for _, tag := range recipeTags {
		if _, ok := requested[strings.ToLower(tag)]; ok {
			hits++
		}
	}
	return float64(hits)
}

// SplitQuery decomposes a free-text search into keywords and tags:
// "#"-prefixed tokens are tags (prefix stripped), the rest are keywords.
func SplitQuery(query string) (keywords, tags []string) {
	for _, token := range strings.Fields(query) {
		if strings.HasPrefix(token, "#") {
			if tag := strings.TrimPrefix(token, "#"); tag != "" {
				tags = append(tags, tag)
			}
		} else {
			keywords = append(keywords, token)
		}
	}
	return keywords, tags
}
