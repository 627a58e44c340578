package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/lane-siege/component"
	"github.com/lixenwraith/lane-siege/core"
)

// LaneEntry is one positioned entity captured by the last rebuild
type LaneEntry struct {
	Entity core.Entity
	Offset float64
	World  mgl64.Vec3
}

// LaneIndex buckets positioned entities by lane, rebuilt once per tick
// Bucket order follows position store order, which is creation order
type LaneIndex struct {
	buckets [][]LaneEntry
	skipped int
}

// NewLaneIndex creates an index with one bucket per lane
func NewLaneIndex(rows int) *LaneIndex {
	if rows < 0 {
		rows = 0
	}
	return &LaneIndex{buckets: make([][]LaneEntry, rows)}
}

// Rows returns the number of lanes
func (li *LaneIndex) Rows() int {
	return len(li.buckets)
}

// Rebuild clears every bucket and refills them from positions
// Entities whose lane falls outside the board are left out and counted
func (li *LaneIndex) Rebuild(positions *Store[component.PositionComponent]) {
	for i := range li.buckets {
		li.buckets[i] = li.buckets[i][:0]
	}
	li.skipped = 0
	positions.ForEach(func(e core.Entity, pos component.PositionComponent) {
		if pos.Lane < 0 || pos.Lane >= len(li.buckets) {
			li.skipped++
			return
		}
		li.buckets[pos.Lane] = append(li.buckets[pos.Lane], LaneEntry{
			Entity: e,
			Offset: pos.Offset,
			World:  pos.World,
		})
	})
}

// Skipped returns how many entities the last rebuild left out
func (li *LaneIndex) Skipped() int {
	return li.skipped
}

// Bucket returns the entries of lane, nil when out of range
// The slice is owned by the index and valid until the next rebuild
func (li *LaneIndex) Bucket(lane int) []LaneEntry {
	if lane < 0 || lane >= len(li.buckets) {
		return nil
	}
	return li.buckets[lane]
}

// AnyAhead reports whether an accepted entry sits in (offset, offset+reach] of lane
func (li *LaneIndex) AnyAhead(lane int, offset, reach float64, accept func(LaneEntry) bool) bool {
	for _, entry := range li.Bucket(lane) {
		if entry.Offset <= offset || entry.Offset > offset+reach {
			continue
		}
		if accept == nil || accept(entry) {
			return true
		}
	}
	return false
}

// AnyBehind reports whether an accepted entry sits in [offset-reach, offset) of lane
func (li *LaneIndex) AnyBehind(lane int, offset, reach float64, accept func(LaneEntry) bool) bool {
	for _, entry := range li.Bucket(lane) {
		if entry.Offset >= offset || entry.Offset < offset-reach {
			continue
		}
		if accept == nil || accept(entry) {
			return true
		}
	}
	return false
}

// FirstWithin returns the first accepted entry, in bucket order, whose offset is within reach of offset
func (li *LaneIndex) FirstWithin(lane int, offset, reach float64, accept func(LaneEntry) bool) (LaneEntry, bool) {
	for _, entry := range li.Bucket(lane) {
		d := entry.Offset - offset
		if d < 0 {
			d = -d
		}
		if d > reach {
			continue
		}
		if accept == nil || accept(entry) {
			return entry, true
		}
	}
	return LaneEntry{}, false
}
