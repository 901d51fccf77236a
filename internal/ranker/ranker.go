// Package ranker scores and trims fetched records before persistence. The
// heuristic is deliberately simple: snippet word count, with a substring
// keyword filter that backs off to the unfiltered list rather than return
// nothing.
package ranker

import (
	"sort"
	"strings"

	"github.com/geoecon/newsradar/internal/domain"
)

// Rank scores every record by snippet word count, keeps the ones matching at
// least one keyword in title+snippet, sorts by score descending (stable, so
// provider order breaks ties), and truncates to topN. When the keyword
// filter eliminates everything the full list is ranked instead.
func Rank(records []domain.NormalizedRecord, keywords []string, topN int) []domain.NormalizedRecord {
	if topN < 0 {
		topN = 0
	}

	filtered := filterByKeywords(records, keywords)
	if len(filtered) == 0 {
		filtered = records
	}

	candidates := make([]domain.RankedCandidate, 0, len(filtered))
	for _, record := range filtered {
		candidates = append(candidates, domain.RankedCandidate{
			Record: record,
			Score:  domain.WordCount(record.Snippet),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	ranked := make([]domain.NormalizedRecord, 0, len(candidates))
	for _, candidate := range candidates {
		ranked = append(ranked, candidate.Record)
	}
	return ranked
}

func filterByKeywords(records []domain.NormalizedRecord, keywords []string) []domain.NormalizedRecord {
	var kept []domain.NormalizedRecord
	for _, record := range records {
		combined := strings.ToLower(record.Title + " " + record.Snippet)
		for _, keyword := range keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(combined, strings.ToLower(keyword)) {
				kept = append(kept, record)
				break
			}
		}
	}
	return kept
}
