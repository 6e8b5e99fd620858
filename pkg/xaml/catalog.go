package xaml

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MacroPower/xamlscale/pkg/xamlerrors"
)

// Namespace is the XML namespace of every element matched by a [Pattern].
const Namespace = "http://schemas.uipath.com/workflow/activities"

// Pattern identifies coordinate-bearing elements by their two closest
// ancestors: a Target element whose parent is the property element
// "<Activity>.<Property>", whose own parent is an Activity element.
type Pattern struct {
	Activity string `json:"activity" yaml:"activity" jsonschema:"description=Local name of the activity element,example=Click"`
	Property string `json:"property" yaml:"property" jsonschema:"description=Member name of the property element,example=CursorPosition"`
	Target   string `json:"target" yaml:"target" jsonschema:"description=Local name of the element holding the coordinates,example=CursorPosition"`
}

// PropertyElement returns the local name of the property element.
func (p Pattern) PropertyElement() string {
	return p.Activity + "." + p.Property
}

func (p Pattern) String() string {
	return p.Activity + "/" + p.PropertyElement() + "/" + p.Target
}

// Validate checks that every part is a non-empty local name.
func (p Pattern) Validate() error {
	parts := map[string]string{
		"activity": p.Activity,
		"property": p.Property,
		"target":   p.Target,
	}
	for _, key := range []string{"activity", "property", "target"} {
		v := parts[key]
		if v == "" {
			return fmt.Errorf("%w %q: empty %s", xamlerrors.ErrInvalidPattern, p, key)
		}
		if strings.ContainsAny(v, ":/. \t\r\n") {
			return fmt.Errorf("%w %q: %s %q is not a local name", xamlerrors.ErrInvalidPattern, p, key, v)
		}
	}

	return nil
}

func positionPattern(activity string) Pattern {
	return Pattern{Activity: activity, Property: "CursorPosition", Target: "CursorPosition"}
}

var (
	defaultPositions = []Pattern{
		positionPattern("Click"),
		positionPattern("Hover"),
		positionPattern("ClickText"),
		positionPattern("HoverText"),
		positionPattern("ClickImage"),
		positionPattern("HoverImage"),
		positionPattern("ClickOCRText"),
		positionPattern("HoverOCRText"),
		positionPattern("FindRelative"),
	}

	defaultRegions = []Pattern{
		{Activity: "Target", Property: "ClippingRegion", Target: "Region"},
		{Activity: "ClickTrigger", Property: "ClippingRegion", Target: "Region"},
		{Activity: "ClickImageTrigger", Property: "ClippingRegion", Target: "Region"},
		{Activity: "SetClippingRegion", Property: "Size", Target: "Region"},
		{Activity: "ElementRecordingInfo", Property: "ElementClippingRegion", Target: "Region"},
	}
)

// Catalog is an immutable set of position and region patterns.
type Catalog struct {
	positions []Pattern
	regions   []Pattern
}

// DefaultCatalog returns the built-in patterns.
func DefaultCatalog() Catalog {
	return Catalog{
		positions: slices.Clone(defaultPositions),
		regions:   slices.Clone(defaultRegions),
	}
}

// Positions returns the patterns matching elements with OffsetX and OffsetY
// attributes.
func (c Catalog) Positions() []Pattern {
	return slices.Clone(c.positions)
}

// Regions returns the patterns matching elements with a Rectangle attribute.
func (c Catalog) Regions() []Pattern {
	return slices.Clone(c.regions)
}

// With returns a copy of c extended with the given patterns. Patterns already
// present are skipped. A pattern may not be both a position and a region.
func (c Catalog) With(positions, regions []Pattern) (Catalog, error) {
	out := Catalog{
		positions: slices.Clone(c.positions),
		regions:   slices.Clone(c.regions),
	}

	for _, p := range positions {
		if err := p.Validate(); err != nil {
			return Catalog{}, err
		}
		if slices.Contains(out.regions, p) {
			return Catalog{}, fmt.Errorf("%w %q: already registered as a region", xamlerrors.ErrInvalidPattern, p)
		}
		if !slices.Contains(out.positions, p) {
			out.positions = append(out.positions, p)
		}
	}

	for _, p := range regions {
		if err := p.Validate(); err != nil {
			return Catalog{}, err
		}
		if slices.Contains(out.positions, p) {
			return Catalog{}, fmt.Errorf("%w %q: already registered as a position", xamlerrors.ErrInvalidPattern, p)
		}
		if !slices.Contains(out.regions, p) {
			out.regions = append(out.regions, p)
		}
	}

	return out, nil
}
