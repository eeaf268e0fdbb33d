package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTables() *Tables {
	return &Tables{
		Synonyms: []Synonym{
			{DrugbankID: "DB00001", Synonym: "Hirudin variant-1"},
			{DrugbankID: "DB00002", Synonym: "Cetuximab"},
		},
		Pathways: []Pathway{
			{PathwayName: Str("Lepirudin Action Pathway"), SMPDBID: Str("SMP0000278")},
		},
		PathwayDrugLinks: []PathwayDrugLink{
			{PathwayName: Str("Lepirudin Action Pathway"), DrugbankID: "DB00001", SMPDBID: Str("SMP0000278")},
			{PathwayName: Str("Lepirudin Action Pathway"), DrugbankID: "DB01373", SMPDBID: Str("SMP0000278")},
		},
	}
}

func TestTableDrugFilter(t *testing.T) {
	tables := sampleTables()

	synonyms, err := tables.Table(TableSynonyms, "DB00001")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"DB00001", "Hirudin variant-1"}}, synonyms.Rows)

	links, err := tables.Table(TablePathwayDrugLinks, "DB01373")
	require.NoError(t, err)
	require.Len(t, links.Rows, 1)
	assert.Equal(t, "DB01373", links.Rows[0][1])

	all, err := tables.Table(TablePathways, "")
	require.NoError(t, err)
	assert.Len(t, all.Rows, 1)
}

func TestTablePathwaysRejectsDrugFilter(t *testing.T) {
	_, err := sampleTables().Table(TablePathways, "DB00001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), TablePathwayDrugLinks)
}

func TestTableUnknown(t *testing.T) {
	_, err := sampleTables().Table("enzymes", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown table")
}
