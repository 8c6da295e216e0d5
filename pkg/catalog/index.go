package catalog

import (
	"fmt"

	"github.com/blevesearch/bleve"
)

// Index is an in-memory full-text index over part numbers and descriptions.
type Index struct {
	index bleve.Index
	parts map[string]Part
}

type indexedPart struct {
	Number      string
	Description string
}

// NewIndex builds an index over parts.
func NewIndex(parts []Part) (*Index, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("catalog: create index: %w", err)
	}

	idx := &Index{
		index: index,
		parts: make(map[string]Part, len(parts)),
	}
	for _, p := range parts {
		if err := index.Index(p.Number, indexedPart{Number: p.Number, Description: p.Description}); err != nil {
			index.Close()
			return nil, fmt.Errorf("catalog: index %s: %w", p.Number, err)
		}
		idx.parts[p.Number] = clonePart(p)
	}
	return idx, nil
}

// Search returns the parts matching text, best match first.
func (i *Index) Search(text string) ([]Part, error) {
	req := bleve.NewSearchRequest(bleve.NewMatchQuery(text))
	req.Size = len(i.parts)

	result, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: search %q: %w", text, err)
	}

	parts := make([]Part, 0, len(result.Hits))
	for _, hit := range result.Hits {
		if p, ok := i.parts[hit.ID]; ok {
			parts = append(parts, clonePart(p))
		}
	}
	return parts, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.index.Close()
}
