package systems

// SystemInfo describes a frame system for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "sense", "core")
}

// Frame system IDs. They double as perf phase names.
const (
	IDMovement = "movement"
	IDLighting = "lighting"
	IDVision   = "vision"
	IDRender   = "render"
)

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems to the registry.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: IDMovement, Name: "Movement", Description: "Moves the player and turns their heading", Category: "core"})
	r.Register(SystemInfo{ID: IDLighting, Name: "Lighting", Description: "Syncs light sources and aggregates the sense map", Category: "sense"})
	r.Register(SystemInfo{ID: IDVision, Name: "Vision", Description: "Recomputes every viewer's field of view", Category: "sense"})
	r.Register(SystemInfo{ID: IDRender, Name: "Render", Description: "Draws terrain, light and visibility", Category: "visual"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
