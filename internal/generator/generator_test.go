package generator

import (
	"bytes"
	"testing"

	"github.com/nishad/drugrake/internal/errors"
	"github.com/nishad/drugrake/internal/models"
	"github.com/nishad/drugrake/internal/parser"
	"github.com/nishad/drugrake/internal/processor"
	"github.com/nishad/drugrake/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSample(t *testing.T) *parser.Document {
	t.Helper()
	doc, err := parser.Load(testutil.FixturePath(t, testutil.SampleFixture))
	require.NoError(t, err)
	return doc
}

func TestGenerateAssignsSequentialIDs(t *testing.T) {
	doc := loadSample(t)

	var calls int
	res, err := Generate(doc, Options{Total: 10, Seed: 1, Progress: func(done, total int) {
		calls++
		assert.Equal(t, 6, total)
	}})
	require.NoError(t, err)

	assert.Equal(t, 6, res.Added)
	assert.Equal(t, "DB00109", res.FirstID)
	assert.Equal(t, "DB00114", res.LastID)
	assert.Equal(t, 6, calls)
	assert.Len(t, res.Document.Drugs(), 10)
	assert.Len(t, doc.Drugs(), 4, "input document is not modified")
}

func TestGeneratedDrugsHaveOnePrimaryID(t *testing.T) {
	res, err := Generate(loadSample(t), Options{Total: 30, Seed: 7})
	require.NoError(t, err)

	generated := res.Document.Drugs()[4:]
	for _, d := range generated {
		ids := d.Elements(parser.DrugBank.Name("drugbank-id"))
		require.Len(t, ids, 1)
		v, ok := ids[0].Attr("primary")
		assert.True(t, ok)
		assert.Equal(t, "true", v)

		seen := make(map[parser.QName]bool)
		for _, c := range d.Children {
			assert.False(t, seen[c.Name], "child %s appears twice", c.Name)
			seen[c.Name] = true
		}
	}
}

func TestGeneratedSubtreesComeFromPool(t *testing.T) {
	doc := loadSample(t)
	res, err := Generate(doc, Options{Total: 20, Seed: 3})
	require.NoError(t, err)

	pool := make(map[string]bool)
	for _, d := range doc.Drugs() {
		for _, c := range d.Children {
			var buf bytes.Buffer
			require.NoError(t, (&parser.Document{Root: c}).Write(&buf))
			pool[buf.String()] = true
		}
	}

	for _, d := range res.Document.Drugs()[4:] {
		for _, c := range d.Children[1:] {
			var buf bytes.Buffer
			require.NoError(t, (&parser.Document{Root: c}).Write(&buf))
			assert.True(t, pool[buf.String()], "subtree %s was not taken whole from the document", c.Name)
		}
	}
}

func TestGenerateRoundTrip(t *testing.T) {
	res, err := Generate(loadSample(t), Options{Total: 12, Seed: 42})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, res.Document.Write(&buf))

	reparsed, err := parser.Parse(&buf)
	require.NoError(t, err)

	drugs := processor.ExtractDrugs(reparsed.Root)
	require.Len(t, drugs, 12)

	ids := make(map[string]bool)
	for _, d := range drugs {
		if d.DrugbankID == nil {
			continue
		}
		assert.False(t, ids[*d.DrugbankID], "duplicate id %s", *d.DrugbankID)
		ids[*d.DrugbankID] = true
	}
	assert.Len(t, ids, 11, "only the unmarked fixture drug lacks an id")
	assert.Equal(t, "Lepirudin", models.Deref(drugs[0].Name))
}

func TestGenerateIsReproducible(t *testing.T) {
	doc := loadSample(t)
	render := func(seed uint64) string {
		res, err := Generate(doc, Options{Total: 15, Seed: seed})
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, res.Document.Write(&buf))
		return buf.String()
	}

	assert.Equal(t, render(5), render(5))
}

func TestGenerateNothingToAdd(t *testing.T) {
	res, err := Generate(loadSample(t), Options{Total: 4})
	require.NoError(t, err)
	assert.Zero(t, res.Added)
	assert.Empty(t, res.FirstID)

	res, err = Generate(loadSample(t), Options{Total: 2})
	require.NoError(t, err)
	assert.Zero(t, res.Added)
	assert.Len(t, res.Document.Drugs(), 4)
}

func TestGenerateStartID(t *testing.T) {
	res, err := Generate(loadSample(t), Options{Total: 6, StartID: 500})
	require.NoError(t, err)
	assert.Equal(t, "DB00500", res.FirstID)
	assert.Equal(t, "DB00501", res.LastID)
}

func TestGenerateStartsAfterHighestID(t *testing.T) {
	doc, err := parser.Load(testutil.FixturePath(t, testutil.PartialFixture))
	require.NoError(t, err)

	res, err := Generate(doc, Options{Total: 101})
	require.NoError(t, err)
	assert.Equal(t, "DB00109", res.FirstID, "ids below the minimum are raised")

	doc.Drugs()[0].ChildWithAttr(parser.DrugBank.Name("drugbank-id"), "primary", "true").Text = "DB00300"
	res, err = Generate(doc, Options{Total: 101})
	require.NoError(t, err)
	assert.Equal(t, "DB00301", res.FirstID)
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate(loadSample(t), Options{Total: 10, StartID: 2})
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindValidation))

	empty, err := parser.Parse(bytes.NewBufferString(testutil.DrugBankXML()))
	require.NoError(t, err)
	_, err = Generate(empty, Options{Total: 10})
	assert.True(t, errors.IsKind(err, errors.KindValidation))

	_, err = Generate(loadSample(t), Options{Total: -1})
	assert.Error(t, err)
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "DB00109", FormatID(109))
	assert.Equal(t, "DB123456", FormatID(123456))
}
