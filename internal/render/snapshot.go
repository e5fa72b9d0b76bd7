package render

import "github.com/AgentService/vibe-arena/internal/vmath"

// SnapshotEntity is one alive entity as the renderer sees it:
// authoritative position plus presentation offset, footprint size,
// archetype identity, and hit-flash state.
type SnapshotEntity struct {
	Pos      vmath.Vec2
	Size     vmath.Vec2
	TypeID   string
	Flashing bool
}

// Snapshot is the immutable view of the alive set produced at the end
// of a tick. The simulation writes into a back buffer and publishes;
// the renderer may read a published snapshot at any rate but never
// mutates simulation state through it.
type Snapshot struct {
	Tick     uint64
	Entities []SnapshotEntity
}
