// Package world holds the location graph: where the witch can go and what
// she can pick up there.
package world

import (
	"fmt"
	"sort"

	"github.com/hammamikhairi/brewrush/internal/config"
	"github.com/hammamikhairi/brewrush/internal/domain"
	"github.com/hammamikhairi/brewrush/internal/logger"
)

// Graph is the map of one session. Exits never change; item stock only
// changes through Collect, Restore and Restock. Not safe for concurrent
// use: the engine owns it from a single goroutine.
type Graph struct {
	locs    map[domain.LocationID]*domain.Location
	initial map[domain.LocationID]map[domain.ItemID]int
	order   []domain.LocationID
	home    domain.LocationID
	log     *logger.Logger
}

// New builds a graph from the given locations. Exits must point at known
// locations and be symmetric (A -N-> B requires B -S-> A).
func New(log *logger.Logger, locs []domain.Location, home domain.LocationID) (*Graph, error) {
	g := &Graph{
		locs:    make(map[domain.LocationID]*domain.Location, len(locs)),
		initial: make(map[domain.LocationID]map[domain.ItemID]int, len(locs)),
		home:    home,
		log:     log,
	}
	for _, l := range locs {
		if l.ID == "" {
			return nil, fmt.Errorf("location without id")
		}
		if _, dup := g.locs[l.ID]; dup {
			return nil, fmt.Errorf("location %s: %w", l.ID, domain.ErrAlreadyExists)
		}
		cp := &domain.Location{
			ID:     l.ID,
			Name:   l.Name,
			Exits:  make(map[domain.Direction]domain.LocationID, len(l.Exits)),
			Items:  make(map[domain.ItemID]int, len(l.Items)),
			Flavor: append([]string(nil), l.Flavor...),
		}
		if cp.Name == "" {
			cp.Name = string(l.ID)
		}
		for d, to := range l.Exits {
			if !d.Valid() {
				return nil, fmt.Errorf("location %s: bad direction %q", l.ID, d)
			}
			cp.Exits[d] = to
		}
		for item, n := range l.Items {
			if n < 0 {
				return nil, fmt.Errorf("location %s: negative stock of %s", l.ID, item)
			}
			if n > 0 {
				cp.Items[item] = n
			}
		}
		g.locs[l.ID] = cp
		g.initial[l.ID] = make(map[domain.ItemID]int, len(cp.Items))
		for item, n := range cp.Items {
			g.initial[l.ID][item] = n
		}
		g.order = append(g.order, l.ID)
	}

	for _, id := range g.order {
		for d, to := range g.locs[id].Exits {
			other, ok := g.locs[to]
			if !ok {
				return nil, fmt.Errorf("location %s: exit %s leads to unknown %s", id, d, to)
			}
			if back := other.Exits[d.Opposite()]; back != id {
				return nil, fmt.Errorf("location %s: exit %s to %s has no way back", id, d, to)
			}
		}
	}
	if _, ok := g.locs[home]; !ok {
		return nil, fmt.Errorf("home %s: %w", home, domain.ErrNotFound)
	}

	log.Debug("world loaded: %d locations, home=%s", len(g.order), home)
	return g, nil
}

// FromConfig converts YAML location definitions into a graph.
func FromConfig(log *logger.Logger, defs []config.LocationDef, home string) (*Graph, error) {
	locs := make([]domain.Location, 0, len(defs))
	for _, d := range defs {
		l := domain.Location{
			ID:     domain.LocationID(d.ID),
			Name:   d.Name,
			Exits:  make(map[domain.Direction]domain.LocationID, len(d.Exits)),
			Items:  make(map[domain.ItemID]int, len(d.Items)),
			Flavor: d.Flavor,
		}
		for dir, to := range d.Exits {
			l.Exits[domain.Direction(dir)] = domain.LocationID(to)
		}
		for item, n := range d.Items {
			l.Items[domain.ItemID(item)] = n
		}
		locs = append(locs, l)
	}
	return New(log, locs, domain.LocationID(home))
}

// Home returns the starting location.
func (g *Graph) Home() domain.LocationID { return g.home }

// IDs returns every location in load order.
func (g *Graph) IDs() []domain.LocationID {
	return append([]domain.LocationID(nil), g.order...)
}

// Has reports whether id names a location.
func (g *Graph) Has(id domain.LocationID) bool {
	_, ok := g.locs[id]
	return ok
}

// Location returns a copy of the location with its current stock.
func (g *Graph) Location(id domain.LocationID) (domain.Location, error) {
	l, ok := g.locs[id]
	if !ok {
		return domain.Location{}, fmt.Errorf("location %s: %w", id, domain.ErrNotFound)
	}
	out := *l
	out.Exits = g.Exits(id)
	out.Items = g.Stock(id)
	out.Flavor = append([]string(nil), l.Flavor...)
	return out, nil
}

// Name returns the display name of a location, or its id if unknown.
func (g *Graph) Name(id domain.LocationID) string {
	if l, ok := g.locs[id]; ok {
		return l.Name
	}
	return string(id)
}

// NeighborsOf returns the locations reachable in one move, sorted.
func (g *Graph) NeighborsOf(id domain.LocationID) []domain.LocationID {
	l, ok := g.locs[id]
	if !ok {
		return nil
	}
	out := make([]domain.LocationID, 0, len(l.Exits))
	for _, to := range l.Exits {
		out = append(out, to)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Exits returns a copy of the exits of a location.
func (g *Graph) Exits(id domain.LocationID) map[domain.Direction]domain.LocationID {
	l, ok := g.locs[id]
	if !ok {
		return nil
	}
	out := make(map[domain.Direction]domain.LocationID, len(l.Exits))
	for d, to := range l.Exits {
		out[d] = to
	}
	return out
}

// Exit resolves the neighbor in direction dir.
func (g *Graph) Exit(from domain.LocationID, dir domain.Direction) (domain.LocationID, error) {
	l, ok := g.locs[from]
	if !ok {
		return "", fmt.Errorf("location %s: %w", from, domain.ErrNotFound)
	}
	to, ok := l.Exits[dir]
	if !ok {
		return "", fmt.Errorf("%s from %s: %w", dir, l.Name, domain.ErrNotAdjacent)
	}
	return to, nil
}

// Move checks that to is adjacent to from and returns it. The graph does
// not track the walker; the caller stores the returned position.
func (g *Graph) Move(from, to domain.LocationID) (domain.LocationID, error) {
	l, ok := g.locs[from]
	if !ok {
		return from, fmt.Errorf("location %s: %w", from, domain.ErrNotFound)
	}
	for _, n := range l.Exits {
		if n == to {
			return to, nil
		}
	}
	return from, fmt.Errorf("%s to %s: %w", l.Name, g.Name(to), domain.ErrNotAdjacent)
}

// Stock returns a copy of the items left at a location.
func (g *Graph) Stock(id domain.LocationID) map[domain.ItemID]int {
	l, ok := g.locs[id]
	if !ok {
		return nil
	}
	out := make(map[domain.ItemID]int, len(l.Items))
	for item, n := range l.Items {
		out[item] = n
	}
	return out
}

// Collect takes one unit of item from a location's pool.
func (g *Graph) Collect(id domain.LocationID, item domain.ItemID) (domain.ItemID, error) {
	l, ok := g.locs[id]
	if !ok {
		return "", fmt.Errorf("location %s: %w", id, domain.ErrNotFound)
	}
	n := l.Items[item]
	if n <= 0 {
		return "", fmt.Errorf("%s at %s: %w", item, l.Name, domain.ErrItemUnavailable)
	}
	if n == 1 {
		delete(l.Items, item)
	} else {
		l.Items[item] = n - 1
	}
	g.log.Debug("collected %s at %s (%d left)", item, id, n-1)
	return item, nil
}

// Restore puts one unit of item back, undoing a Collect whose item could
// not be stored.
func (g *Graph) Restore(id domain.LocationID, item domain.ItemID) {
	if l, ok := g.locs[id]; ok {
		l.Items[item]++
	}
}

// Restock tops every pool back up to the stock it was loaded with. Pools
// already at or above that level are left alone.
func (g *Graph) Restock() {
	for _, id := range g.order {
		l := g.locs[id]
		for item, n := range g.initial[id] {
			if l.Items[item] < n {
				l.Items[item] = n
			}
		}
	}
	g.log.Debug("pools restocked")
}

// Flavor picks a random flavor line for a location, or "" if it has none.
func (g *Graph) Flavor(id domain.LocationID, rng domain.Rand) string {
	l, ok := g.locs[id]
	if !ok || len(l.Flavor) == 0 {
		return ""
	}
	return l.Flavor[rng.IntN(len(l.Flavor))]
}
