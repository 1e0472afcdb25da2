// ABOUTME: Contact search engine
// ABOUTME: Exact substring matching with a ranked fuzzy fallback
package search

import (
	"sort"
	"strings"

	"github.com/harperreed/abook/fuzzy"
	"github.com/harperreed/abook/models"
)

// Threshold is the minimum fuzzy score a contact must reach to appear in
// fuzzy results.
const Threshold = 0.3

// DefaultLimit caps fuzzy results when the caller does not say otherwise.
const DefaultLimit = 5

// Exact returns contacts whose joined textual fields contain the query,
// case-insensitively. Input order is preserved.
func Exact(contacts []*models.Contact, query string) []*models.Contact {
	query = strings.ToLower(query)

	var results []*models.Contact
	for _, contact := range contacts {
		fields := contact.FieldValues()
		for i, f := range fields {
			fields[i] = strings.ToLower(f)
		}
		if strings.Contains(strings.Join(fields, " "), query) {
			results = append(results, contact)
		}
	}
	return results
}

// Fuzzy scores every contact by the best similarity between the query and
// any single field, sorts descending (stable over input order), drops scores
// below Threshold, and returns at most limit contacts.
func Fuzzy(contacts []*models.Contact, query string, limit int) []*models.Contact {
	if limit <= 0 {
		limit = DefaultLimit
	}

	type scored struct {
		contact *models.Contact
		score   float64
	}

	ranked := make([]scored, 0, len(contacts))
	for _, contact := range contacts {
		best := 0.0
		for _, field := range contact.FieldValues() {
			if s := fuzzy.Similarity(query, field); s > best {
				best = s
			}
		}
		ranked = append(ranked, scored{contact: contact, score: best})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	var results []*models.Contact
	for _, r := range ranked {
		if r.score < Threshold {
			break
		}
		results = append(results, r.contact)
		if len(results) == limit {
			break
		}
	}
	return results
}
