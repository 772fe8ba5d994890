package planning

import (
	"context"
	"errors"

	"github.com/alessandrv/FEC-mrp/internal/domain/shared"
	"golang.org/x/sync/errgroup"
)

// NoParentMarker is recorded as the parent of an ordered article that has no
// BOM and therefore resolves to itself.
const NoParentMarker = "None"

var (
	// ErrEmptyOrder is returned when a simulation carries no line items
	ErrEmptyOrder = shared.ErrValidation.WithMessage("No items provided")
	// ErrNoComponentsFound is returned when no line item resolves to a component
	ErrNoComponentsFound = shared.ErrNotFound.WithMessage("No components found for the ordered articles")
	// ErrNoAvailabilityRows is returned when the availability source knows none
	// of the exploded components
	ErrNoAvailabilityRows = shared.ErrNotFound.WithMessage("No availability data found for the components")
)

// LineItem is one ordered article. Quantity is the raw value received from the
// caller and is coerced with CoerceQuantity (fallback 0).
type LineItem struct {
	Code     string
	Quantity any
}

// BOMLink is a single parent to child link as read from the BOM source
type BOMLink struct {
	ParentCode  string
	ChildCode   string
	Description string
	Coefficient RawNumber
}

// ComponentRequirement is the aggregated demand for one component across the
// whole order
type ComponentRequirement struct {
	Code                  string
	Description           string
	TotalRequiredQuantity int64
	ParentCodes           []string
}

func (c *ComponentRequirement) addParent(code string) {
	for _, p := range c.ParentCodes {
		if p == code {
			return
		}
	}
	c.ParentCodes = append(c.ParentCodes, code)
}

// Explosion holds component requirements keyed by code, in first-seen order
type Explosion struct {
	order  []string
	byCode map[string]*ComponentRequirement
}

// NewExplosion creates an empty explosion
func NewExplosion() *Explosion {
	return &Explosion{byCode: make(map[string]*ComponentRequirement)}
}

// Add accumulates quantity for code and records parent when it is non-empty.
// The total saturates at math.MaxInt64. The first non-empty description seen
// for a code is kept.
func (e *Explosion) Add(code, description string, quantity int64, parent string) {
	req, ok := e.byCode[code]
	if !ok {
		req = &ComponentRequirement{Code: code}
		e.byCode[code] = req
		e.order = append(e.order, code)
	}
	if req.Description == "" {
		req.Description = description
	}
	req.TotalRequiredQuantity = addQuantities(req.TotalRequiredQuantity, quantity)
	if parent != "" {
		req.addParent(parent)
	}
}

// Len returns the number of distinct components
func (e *Explosion) Len() int {
	return len(e.order)
}

// Codes returns component codes in first-seen order
func (e *Explosion) Codes() []string {
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Get returns the requirement for code
func (e *Explosion) Get(code string) (*ComponentRequirement, bool) {
	req, ok := e.byCode[code]
	return req, ok
}

// Requirements returns all requirements in first-seen order
func (e *Explosion) Requirements() []*ComponentRequirement {
	out := make([]*ComponentRequirement, 0, len(e.order))
	for _, code := range e.order {
		out = append(out, e.byCode[code])
	}
	return out
}

// ExplodeOptions tunes Explode
type ExplodeOptions struct {
	// Concurrency bounds parallel BOM lookups. Values below 1 mean 1.
	Concurrency int
	// LegacyNoneParent records NoParentMarker as the parent of self-resolved
	// articles. When false they carry no parent.
	LegacyNoneParent bool
}

type bomLookup struct {
	links       []BOMLink
	description string
}

// Explode resolves line items into aggregated component requirements using a
// single level of the BOM. Items with an empty code or a quantity that
// coerces to zero or less are skipped. An article without BOM links is
// treated as its own component with coefficient 1.
//
// Lookups for distinct parents run concurrently, accumulation happens in line
// item order so the result is deterministic.
func Explode(ctx context.Context, boms BOMSource, articles ArticleSource, items []LineItem, opts ExplodeOptions) (*Explosion, error) {
	type ordered struct {
		code string
		qty  int64
	}

	valid := make([]ordered, 0, len(items))
	var parents []string
	seen := make(map[string]int)
	for _, item := range items {
		if item.Code == "" {
			continue
		}
		qty := CoerceQuantity(item.Quantity, 0)
		if qty <= 0 {
			continue
		}
		valid = append(valid, ordered{code: item.Code, qty: qty})
		if _, ok := seen[item.Code]; !ok {
			seen[item.Code] = len(parents)
			parents = append(parents, item.Code)
		}
	}

	lookups, err := lookupParents(ctx, boms, articles, parents, opts.Concurrency)
	if err != nil {
		return nil, err
	}

	explosion := NewExplosion()
	for _, item := range valid {
		if err := ctx.Err(); err != nil {
			return nil, sourceError(ctx, err)
		}
		lookup := lookups[seen[item.code]]
		if len(lookup.links) == 0 {
			parent := ""
			if opts.LegacyNoneParent {
				parent = NoParentMarker
			}
			explosion.Add(item.code, lookup.description, item.qty, parent)
			continue
		}
		for _, link := range lookup.links {
			if link.ChildCode == "" {
				continue
			}
			explosion.Add(link.ChildCode, link.Description, scaleQuantity(CoerceCoefficient(link.Coefficient), item.qty), item.code)
		}
	}

	if explosion.Len() == 0 {
		return nil, ErrNoComponentsFound
	}
	return explosion, nil
}

func lookupParents(ctx context.Context, boms BOMSource, articles ArticleSource, parents []string, concurrency int) ([]bomLookup, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	lookups := make([]bomLookup, len(parents))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, code := range parents {
		g.Go(func() error {
			links, err := boms.GetBOMLinks(gctx, code)
			if err != nil {
				return sourceError(ctx, err)
			}
			lookups[i].links = links
			if len(links) > 0 || articles == nil {
				return nil
			}
			desc, err := articles.GetArticleDescription(gctx, code)
			switch {
			case err == nil:
				lookups[i].description = desc
			case errors.Is(err, shared.ErrNotFound):
			default:
				return sourceError(ctx, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lookups, nil
}

// sourceError maps a data source failure to the domain taxonomy. Deadline
// errors become ErrTimeout, domain errors pass through, anything else is an
// upstream failure.
func sourceError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return shared.ErrTimeout.Wrap(err)
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	return shared.ErrUpstreamData.Wrap(err)
}
