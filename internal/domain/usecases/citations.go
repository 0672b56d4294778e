package usecases

import (
	"github.com/karakusoft/faqbot/internal/domain/entities"
)

// Collect turns a ranked retrieval result into the prompt context block
// and the citation list. Contexts keep every document's content in rank
// order, duplicates and empty strings included; citations keep one entry
// per distinct (defaulted) title, in first-seen order. Pure function.
func Collect(docs []entities.RetrievedDocument) (contexts []string, citations []entities.Citation) {
	contexts = make([]string, len(docs))
	citations = []entities.Citation{}
	seen := make(map[string]struct{}, len(docs))

	for i, doc := range docs {
		contexts[i] = doc.Content

		title := doc.Title()
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		citations = append(citations, entities.Citation{Title: title})
	}
	return contexts, citations
}
