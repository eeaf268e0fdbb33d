// Package generator expands a DrugBank document with synthetic drug records
// assembled from subtrees resampled across the document.
package generator

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"

	"github.com/nishad/drugrake/internal/errors"
	"github.com/nishad/drugrake/internal/parser"
)

// MinStartID is the lowest numeric id assigned to generated drugs.
const MinStartID = 109

var (
	tagDrug       = parser.DrugBank.Name("drug")
	tagDrugbankID = parser.DrugBank.Name("drugbank-id")

	idPattern = regexp.MustCompile(`^DB(\d+)$`)
)

// Options configures a generation run
type Options struct {
	// Total is the number of drugs the output should hold. Nothing is
	// generated when the document already has that many.
	Total int
	// StartID is the numeric part of the first generated id. Zero picks
	// one past the highest existing id, but never below MinStartID.
	StartID int
	// Seed makes the subtree choices reproducible.
	Seed uint64
	// Progress, when set, is called after each generated drug.
	Progress func(done, total int)
}

// Result is the outcome of Generate
type Result struct {
	Document *parser.Document
	Added    int
	FirstID  string
	LastID   string
}

// FormatID renders a numeric drug id.
func FormatID(n int) string {
	return fmt.Sprintf("DB%05d", n)
}

// Generate returns a copy of doc holding opts.Total drugs. Each new drug
// copies the first drug's attributes, gets exactly one primary drugbank-id,
// and for every child kind seen in the document receives one whole subtree
// of that kind picked at random from all drugs. doc is not modified.
func Generate(doc *parser.Document, opts Options) (*Result, error) {
	const op errors.Op = "generator.Generate"

	if opts.Total < 0 {
		return nil, errors.E(op, errors.KindValidation, "total must not be negative")
	}

	out := doc.Clone()
	drugs := out.Root.Elements(tagDrug)
	if len(drugs) == 0 {
		return nil, errors.E(op, errors.KindValidation, "document has no drug records to use as template")
	}

	existing, maxID := existingIDs(drugs)
	start := opts.StartID
	if start == 0 {
		start = maxID + 1
		if start < MinStartID {
			start = MinStartID
		}
	}

	result := &Result{Document: out}
	toAdd := opts.Total - len(drugs)
	if toAdd <= 0 {
		return result, nil
	}

	tags, pool := collectSubtrees(drugs)
	template := drugs[0]
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	for i := 0; i < toAdd; i++ {
		id := FormatID(start + i)
		if existing[id] {
			return nil, errors.E(op, errors.KindValidation, fmt.Sprintf("generated id %s already exists", id))
		}
		existing[id] = true

		drug := &parser.Node{Name: template.Name}
		drug.Attrs = append(drug.Attrs, template.Attrs...)

		idNode := &parser.Node{Name: tagDrugbankID, Text: id}
		idNode.SetAttr("primary", "true")
		drug.Children = append(drug.Children, idNode)

		for _, tag := range tags {
			candidates := pool[tag]
			drug.Children = append(drug.Children, candidates[rng.IntN(len(candidates))].Clone())
		}

		out.Root.Children = append(out.Root.Children, drug)

		if i == 0 {
			result.FirstID = id
		}
		result.LastID = id
		result.Added++
		if opts.Progress != nil {
			opts.Progress(i+1, toAdd)
		}
	}

	return result, nil
}

// existingIDs returns the primary ids in use and the highest numeric one.
func existingIDs(drugs []*parser.Node) (map[string]bool, int) {
	ids := make(map[string]bool, len(drugs))
	maxID := 0
	for _, d := range drugs {
		idNode := d.ChildWithAttr(tagDrugbankID, "primary", "true")
		if idNode == nil {
			continue
		}
		id := idNode.TextContent()
		ids[id] = true
		if m := idPattern.FindStringSubmatch(id); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > maxID {
				maxID = n
			}
		}
	}
	return ids, maxID
}

// collectSubtrees groups every non-id child of every drug by element name.
// tags lists the names in first-seen order.
func collectSubtrees(drugs []*parser.Node) ([]parser.QName, map[parser.QName][]*parser.Node) {
	var tags []parser.QName
	pool := make(map[parser.QName][]*parser.Node)
	for _, d := range drugs {
		for _, c := range d.Children {
			if c.Name == tagDrugbankID {
				continue
			}
			if _, ok := pool[c.Name]; !ok {
				tags = append(tags, c.Name)
			}
			pool[c.Name] = append(pool[c.Name], c)
		}
	}
	return tags, pool
}
