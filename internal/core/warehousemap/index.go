// Package warehousemap contains the pure coordinate index over a
// warehouse's bin set. The zone/aisle/rack levels above bins are purely
// organizational; only bins carry coordinates, so the index is flat.
package warehousemap

// Bin is one addressable storage location with its map coordinates.
type Bin struct {
	ID   string
	Code string // optional human-readable location code
	X    float64
	Y    float64
}

// Coordinate is a resolved 2-D position in warehouse map units.
type Coordinate struct {
	X float64
	Y float64
}

// Index is a flat lookup from bin id or location code to coordinates.
type Index struct {
	byID   map[string]Coordinate
	byCode map[string]Coordinate
}

// BuildIndex flattens bins into an id- and code-keyed index. Later bins
// win on duplicate ids or codes; the store's primary key makes id
// collisions impossible in practice.
func BuildIndex(bins []Bin) *Index {
	ix := &Index{
		byID:   make(map[string]Coordinate, len(bins)),
		byCode: make(map[string]Coordinate),
	}
	for _, b := range bins {
		c := Coordinate{X: b.X, Y: b.Y}
		ix.byID[b.ID] = c
		if b.Code != "" {
			ix.byCode[b.Code] = c
		}
	}
	return ix
}

// ByID resolves a bin id. A miss is not an error: the caller decides
// policy for unresolved locations.
func (ix *Index) ByID(id string) (Coordinate, bool) {
	c, ok := ix.byID[id]
	return c, ok
}

// ByCode resolves a free-text location code.
func (ix *Index) ByCode(code string) (Coordinate, bool) {
	c, ok := ix.byCode[code]
	return c, ok
}

// Len returns the number of indexed bins.
func (ix *Index) Len() int {
	return len(ix.byID)
}
