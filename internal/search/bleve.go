// Package search maintains a full-text index of drugs, their synonyms and
// descriptions.
package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/nishad/drugrake/internal/models"
)

const (
	docTypeDrug = "drug"
	batchSize   = 500
)

// BleveIndex wraps the Bleve search index
type BleveIndex struct {
	index bleve.Index
	path  string
}

// DrugDoc is the indexed form of a drug
type DrugDoc struct {
	Type        string   `json:"type"`
	DrugbankID  string   `json:"drugbank_id"`
	Name        string   `json:"name"`
	DrugType    string   `json:"drug_type"`
	Synonyms    []string `json:"synonyms"`
	Groups      []string `json:"groups"`
	Description string   `json:"description"`
	Indication  string   `json:"indication"`
}

// Hit is one search result
type Hit struct {
	DrugbankID string  `json:"drugbank_id"`
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
}

// Result is the outcome of a search
type Result struct {
	Query  string         `json:"query"`
	Total  uint64         `json:"total"`
	Hits   []Hit          `json:"hits"`
	Groups map[string]int `json:"groups,omitempty"`
}

// InitBleveIndex initializes or opens a Bleve index
func InitBleveIndex(indexPath string) (*BleveIndex, error) {
	index, err := bleve.Open(indexPath)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(indexPath, createDrugIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("failed to create index: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	return &BleveIndex{
		index: index,
		path:  indexPath,
	}, nil
}

func createDrugIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = "standard"

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("type", createKeywordFieldMapping())
	docMapping.AddFieldMappingsAt("drugbank_id", createKeywordFieldMapping())
	docMapping.AddFieldMappingsAt("drug_type", createKeywordFieldMapping())
	docMapping.AddFieldMappingsAt("groups", createKeywordFieldMapping())
	docMapping.AddFieldMappingsAt("name", createTextFieldMapping())
	docMapping.AddFieldMappingsAt("synonyms", createTextFieldMapping())
	docMapping.AddFieldMappingsAt("description", createTextFieldMapping())
	docMapping.AddFieldMappingsAt("indication", createTextFieldMapping())

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func createKeywordFieldMapping() *mapping.FieldMapping {
	fieldMapping := bleve.NewTextFieldMapping()
	fieldMapping.Analyzer = "keyword"
	fieldMapping.Store = true
	fieldMapping.IncludeInAll = true
	fieldMapping.DocValues = true
	return fieldMapping
}

func createTextFieldMapping() *mapping.FieldMapping {
	fieldMapping := bleve.NewTextFieldMapping()
	fieldMapping.Analyzer = "standard"
	fieldMapping.Store = true
	fieldMapping.IncludeInAll = true
	return fieldMapping
}

// DrugDocs joins drugs with their synonyms and groups. Drugs without a
// primary id cannot be addressed and are left out.
func DrugDocs(tables *models.Tables) []DrugDoc {
	synonyms := make(map[string][]string)
	for _, s := range tables.Synonyms {
		synonyms[s.DrugbankID] = append(synonyms[s.DrugbankID], s.Synonym)
	}
	groups := make(map[string][]string)
	for _, g := range tables.Groups {
		groups[g.DrugbankID] = append(groups[g.DrugbankID], g.Group)
	}

	docs := make([]DrugDoc, 0, len(tables.Drugs))
	for _, d := range tables.Drugs {
		if d.DrugbankID == nil {
			continue
		}
		id := *d.DrugbankID
		docs = append(docs, DrugDoc{
			Type:        docTypeDrug,
			DrugbankID:  id,
			Name:        models.Deref(d.Name),
			DrugType:    models.Deref(d.Type),
			Synonyms:    synonyms[id],
			Groups:      groups[id],
			Description: models.Deref(d.Description),
			Indication:  models.Deref(d.Indication),
		})
	}
	return docs
}

// IndexTables indexes every addressable drug of tables in batches and
// returns the number of documents written.
func (b *BleveIndex) IndexTables(tables *models.Tables) (int, error) {
	docs := DrugDocs(tables)

	batch := b.index.NewBatch()
	for _, doc := range docs {
		if err := batch.Index(doc.DrugbankID, doc); err != nil {
			return 0, fmt.Errorf("failed to add document %s to batch: %w", doc.DrugbankID, err)
		}
		if batch.Size() >= batchSize {
			if err := b.index.Batch(batch); err != nil {
				return 0, fmt.Errorf("failed to index batch: %w", err)
			}
			batch = b.index.NewBatch()
		}
	}
	if batch.Size() > 0 {
		if err := b.index.Batch(batch); err != nil {
			return 0, fmt.Errorf("failed to index batch: %w", err)
		}
	}
	return len(docs), nil
}

// Search runs a query string query and returns up to limit hits with a
// facet over drug groups.
func (b *BleveIndex) Search(queryStr string, limit int) (*Result, error) {
	if limit <= 0 {
		limit = 10
	}
	req := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(queryStr), limit, 0, false)
	req.Fields = []string{"drugbank_id", "name"}
	req.AddFacet("groups", bleve.NewFacetRequest("groups", 10))

	res, err := b.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	out := &Result{
		Query: queryStr,
		Total: res.Total,
		Hits:  make([]Hit, 0, len(res.Hits)),
	}
	for _, h := range res.Hits {
		name, _ := h.Fields["name"].(string)
		out.Hits = append(out.Hits, Hit{DrugbankID: h.ID, Name: name, Score: h.Score})
	}
	if facet, ok := res.Facets["groups"]; ok && facet.Terms != nil {
		out.Groups = make(map[string]int)
		for _, term := range facet.Terms.Terms() {
			out.Groups[term.Term] = term.Count
		}
	}
	return out, nil
}

// Close closes the Bleve index
func (b *BleveIndex) Close() error {
	return b.index.Close()
}

// GetDocCount returns the number of documents in the index
func (b *BleveIndex) GetDocCount() (uint64, error) {
	return b.index.DocCount()
}

// Path returns the index directory.
func (b *BleveIndex) Path() string {
	return b.path
}

// BuildIndex opens or creates the index at path and indexes tables into it.
func BuildIndex(path string, tables *models.Tables) (*BleveIndex, int, error) {
	idx, err := InitBleveIndex(path)
	if err != nil {
		return nil, 0, err
	}
	n, err := idx.IndexTables(tables)
	if err != nil {
		idx.Close()
		return nil, 0, err
	}
	return idx, n, nil
}
