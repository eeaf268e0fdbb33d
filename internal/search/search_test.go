package search

import (
	"path/filepath"
	"testing"

	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/parser"
	"github.com/nishad/drugrake/internal/processor"
	"github.com/nishad/drugrake/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIndex(t *testing.T) *BleveIndex {
	t.Helper()
	index, err := InitBleveIndex(filepath.Join(t.TempDir(), "drugs.bleve"))
	require.NoError(t, err)
	t.Cleanup(func() { index.Close() })
	return index
}

func TestDrugDocs(t *testing.T) {
	tables := testutil.SampleTables()
	tables.Drugs = append(tables.Drugs, models.Drug{Name: models.Str("No id")})

	docs := DrugDocs(tables)
	require.Len(t, docs, 3, "drug without primary id is not indexed")

	assert.Equal(t, "DB00001", docs[0].DrugbankID)
	assert.Equal(t, []string{"Hirudin variant-1", "Desulfatohirudin"}, docs[0].Synonyms)
	assert.Equal(t, []string{"approved", "withdrawn"}, docs[0].Groups)
	assert.Nil(t, docs[2].Synonyms)
}

func TestIndexAndSearch(t *testing.T) {
	index := setupIndex(t)

	n, err := index.IndexTables(testutil.SampleTables())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	count, err := index.GetDocCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"by name", "cetuximab", "DB00002"},
		{"by synonym", "desulfatohirudin", "DB00001"},
		{"by id", "drugbank_id:DB00003", "DB00003"},
		{"by indication", "thrombocytopenia", "DB00001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := index.Search(tt.query, 5)
			require.NoError(t, err)
			require.NotEmpty(t, res.Hits)
			assert.Equal(t, tt.want, res.Hits[0].DrugbankID)
		})
	}
}

func TestSearchGroupFacet(t *testing.T) {
	index := setupIndex(t)
	_, err := index.IndexTables(testutil.SampleTables())
	require.NoError(t, err)

	res, err := index.Search("groups:approved", 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), res.Total)
	assert.Equal(t, 3, res.Groups["approved"])
	assert.Equal(t, 1, res.Groups["withdrawn"])
	assert.Len(t, res.Hits, 3)
	for _, h := range res.Hits {
		assert.NotEmpty(t, h.Name)
	}
}

func TestReopenIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drugs.bleve")
	index, err := InitBleveIndex(path)
	require.NoError(t, err)
	_, err = index.IndexTables(testutil.SampleTables())
	require.NoError(t, err)
	require.NoError(t, index.Close())

	reopened, err := InitBleveIndex(path)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.GetDocCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestBuildIndexFromFixture(t *testing.T) {
	testutil.SkipIfShort(t, "parses the partial fixture")

	doc, err := parser.Load(testutil.FixturePath(t, testutil.PartialFixture))
	require.NoError(t, err)
	tables := processor.ExtractAll(doc.Root)

	index, n, err := BuildIndex(filepath.Join(t.TempDir(), "partial.bleve"), tables)
	require.NoError(t, err)
	defer index.Close()

	assert.Equal(t, 100, n)
	count, err := index.GetDocCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(100), count)
}
