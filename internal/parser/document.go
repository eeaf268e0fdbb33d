// Package parser loads DrugBank XML documents into an in-memory tree of
// namespace-qualified nodes shared by all extractors.
package parser

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nishad/drugrake/internal/errors"
)

const (
	xmlnsPrefix = "xmlns"
	xmlURL      = "http://www.w3.org/XML/1998/namespace"
)

// Document is a fully parsed XML document
type Document struct {
	Path string
	Root *Node

	// prefixes maps namespace URIs to the prefix first declared for them
	prefixes map[string]string
}

// Load parses the file at path. A missing file fails with a
// KindNotFound error and undecodable content with a KindMalformed error;
// both match errors.ErrDocumentNotFound / errors.ErrMalformedDocument.
// Every call reads the file again.
func Load(path string) (*Document, error) {
	const op errors.Op = "parser.Load"

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.E(op, errors.KindNotFound, fmt.Sprintf("document %s not found", path), err)
		}
		return nil, errors.E(op, errors.KindIO, err)
	}
	defer f.Close()

	doc, err := Parse(bufio.NewReaderSize(f, 1<<20))
	if err != nil {
		return nil, errors.WrapMsg(op, path, err)
	}
	doc.Path = path
	return doc, nil
}

// Parse builds a Document from r.
func Parse(r io.Reader) (*Document, error) {
	const op errors.Op = "parser.Parse"

	decoder := xml.NewDecoder(r)
	doc := &Document{prefixes: make(map[string]string)}

	var stack []*Node
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.E(op, errors.KindMalformed, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{
				Name:  QName{Space: t.Name.Space, Local: t.Name.Local},
				Attrs: t.Copy().Attr,
			}
			doc.recordPrefixes(node.Attrs)

			if len(stack) == 0 {
				if doc.Root != nil {
					return nil, errors.E(op, errors.KindMalformed, "multiple root elements")
				}
				doc.Root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if doc.Root == nil {
		return nil, errors.E(op, errors.KindMalformed, "no root element")
	}
	return doc, nil
}

func (d *Document) recordPrefixes(attrs []xml.Attr) {
	for _, a := range attrs {
		if a.Name.Space == xmlnsPrefix {
			if _, ok := d.prefixes[a.Value]; !ok {
				d.prefixes[a.Value] = a.Name.Local
			}
		}
	}
}

// Drugs returns the top-level drug records of a DrugBank document.
func (d *Document) Drugs() []*Node {
	return d.Root.Elements(DrugBank.Name("drug"))
}

// Write serializes the document as indented UTF-8 XML. Namespace
// declarations present on the parsed elements are written back unchanged.
func (d *Document) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(xml.Header); err != nil {
		return err
	}

	defaultNS := ""
	for _, a := range d.Root.Attrs {
		if a.Name.Space == "" && a.Name.Local == xmlnsPrefix {
			defaultNS = a.Value
		}
	}
	if err := d.writeNode(bw, d.Root, defaultNS, 0); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

func (d *Document) writeNode(w *bufio.Writer, n *Node, defaultNS string, depth int) error {
	indent := strings.Repeat("  ", depth)
	name := d.elementName(n.Name, defaultNS)

	w.WriteString(indent)
	w.WriteByte('<')
	w.WriteString(name)
	for _, a := range n.Attrs {
		w.WriteByte(' ')
		w.WriteString(d.attrName(a.Name))
		w.WriteString(`="`)
		if err := xml.EscapeText(w, []byte(a.Value)); err != nil {
			return err
		}
		w.WriteByte('"')
	}

	text := strings.TrimSpace(n.Text)
	if len(n.Children) == 0 && text == "" {
		_, err := w.WriteString("/>")
		return err
	}
	w.WriteByte('>')

	if text != "" {
		if err := xml.EscapeText(w, []byte(text)); err != nil {
			return err
		}
	}
	if len(n.Children) > 0 {
		for _, c := range n.Children {
			w.WriteByte('\n')
			if err := d.writeNode(w, c, defaultNS, depth+1); err != nil {
				return err
			}
		}
		w.WriteByte('\n')
		w.WriteString(indent)
	}

	w.WriteString("</")
	w.WriteString(name)
	_, err := w.WriteString(">")
	return err
}

func (d *Document) elementName(q QName, defaultNS string) string {
	if q.Space == "" || q.Space == defaultNS {
		return q.Local
	}
	if prefix, ok := d.prefixes[q.Space]; ok {
		return prefix + ":" + q.Local
	}
	return q.Local
}

func (d *Document) attrName(n xml.Name) string {
	switch {
	case n.Space == "":
		return n.Local
	case n.Space == xmlnsPrefix:
		return xmlnsPrefix + ":" + n.Local
	case n.Space == xmlURL:
		return "xml:" + n.Local
	}
	if prefix, ok := d.prefixes[n.Space]; ok {
		return prefix + ":" + n.Local
	}
	return n.Local
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	prefixes := make(map[string]string, len(d.prefixes))
	for k, v := range d.prefixes {
		prefixes[k] = v
	}
	return &Document{Path: d.Path, Root: d.Root.Clone(), prefixes: prefixes}
}
