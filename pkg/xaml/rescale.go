package xaml

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/MacroPower/xamlscale/pkg/scaling"
)

const (
	attrOffsetX   = "OffsetX"
	attrOffsetY   = "OffsetY"
	attrRectangle = "Rectangle"

	rectangleSep = ", "
)

type shape int

const (
	shapePosition shape = iota + 1
	shapeRegion
)

type patternKey struct {
	activity, property, target string
}

// Stats describes the changes made to a single document.
type Stats struct {
	// Matched position elements.
	Positions int
	// Matched region elements.
	Regions int
	// Attributes whose value was replaced.
	Rewritten int
	// Attributes that were present but not integers, left as they were.
	Skipped int
}

// Add returns the sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Positions: s.Positions + o.Positions,
		Regions:   s.Regions + o.Regions,
		Rewritten: s.Rewritten + o.Rewritten,
		Skipped:   s.Skipped + o.Skipped,
	}
}

// Rescaler rewrites the coordinates of the elements matched by a [Catalog].
type Rescaler struct {
	index   map[patternKey]shape
	catalog Catalog
}

// NewRescaler creates a [Rescaler] for the given catalog.
func NewRescaler(c Catalog) *Rescaler {
	r := &Rescaler{
		catalog: c,
		index:   make(map[patternKey]shape, len(c.positions)+len(c.regions)),
	}
	for _, p := range c.positions {
		r.index[keyOf(p)] = shapePosition
	}
	for _, p := range c.regions {
		r.index[keyOf(p)] = shapeRegion
	}

	return r
}

// Catalog returns the patterns used by r.
func (r *Rescaler) Catalog() Catalog {
	return r.catalog
}

func keyOf(p Pattern) patternKey {
	return patternKey{activity: p.Activity, property: p.PropertyElement(), target: p.Target}
}

// Rescale multiplies the coordinates of every matched element in doc by f.
// All positions are rewritten first, then all regions, each in document
// order.
func (r *Rescaler) Rescale(doc *Document, f scaling.Factor) Stats {
	positions, regions := r.Match(doc)

	stats := Stats{
		Positions: len(positions),
		Regions:   len(regions),
	}

	for _, e := range positions {
		for _, key := range []string{attrOffsetX, attrOffsetY} {
			stats = stats.Add(rescaleAttr(e, key, f, rescaleInt))
		}
	}

	for _, e := range regions {
		stats = stats.Add(rescaleAttr(e, attrRectangle, f, rescaleRectangle))
	}

	return stats
}

// Match returns the position and region elements of doc in document order.
func (r *Rescaler) Match(doc *Document) ([]*etree.Element, []*etree.Element) {
	var positions, regions []*etree.Element

	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	var visit func(e *etree.Element)
	visit = func(e *etree.Element) {
		switch r.shapeOf(e) {
		case shapePosition:
			positions = append(positions, e)
		case shapeRegion:
			regions = append(regions, e)
		}
		for _, c := range e.ChildElements() {
			visit(c)
		}
	}
	visit(root)

	return positions, regions
}

func (r *Rescaler) shapeOf(e *etree.Element) shape {
	property := e.Parent()
	if property == nil {
		return 0
	}

	activity := property.Parent()
	if activity == nil {
		return 0
	}

	s, ok := r.index[patternKey{activity: activity.Tag, property: property.Tag, target: e.Tag}]
	if !ok {
		return 0
	}

	for _, el := range []*etree.Element{e, property, activity} {
		if el.NamespaceURI() != Namespace {
			return 0
		}
	}

	return s
}

// rescaleAttr rewrites the unprefixed attribute key of e with fn. Missing and
// empty attributes are ignored.
func rescaleAttr(e *etree.Element, key string, f scaling.Factor, fn func(string, scaling.Factor) (string, bool)) Stats {
	a := findAttr(e, key)
	if a == nil || a.Value == "" {
		return Stats{}
	}

	v, ok := fn(a.Value, f)
	if !ok {
		slog.Debug("skip attribute",
			slog.String("element", e.GetPath()),
			slog.String("attr", key),
			slog.String("value", a.Value),
		)

		return Stats{Skipped: 1}
	}

	slog.Debug("rescale attribute",
		slog.String("element", e.GetPath()),
		slog.String("attr", key),
		slog.String("from", a.Value),
		slog.String("to", v),
	)

	a.Value = v

	return Stats{Rewritten: 1}
}

func findAttr(e *etree.Element, key string) *etree.Attr {
	for i := range e.Attr {
		if e.Attr[i].Space == "" && e.Attr[i].Key == key {
			return &e.Attr[i]
		}
	}

	return nil
}

func rescaleInt(s string, f scaling.Factor) (string, bool) {
	v, err := scaling.ParseInt(s)
	if err != nil {
		return "", false
	}

	return strconv.FormatInt(f.Apply(v), 10), true
}

// rescaleRectangle rewrites all four parts of "x,y,width,height", or nothing.
func rescaleRectangle(s string, f scaling.Factor) (string, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return "", false
	}

	out := make([]string, len(parts))
	for i, part := range parts {
		v, ok := rescaleInt(part, f)
		if !ok {
			return "", false
		}

		out[i] = v
	}

	return strings.Join(out, rectangleSep), true
}
