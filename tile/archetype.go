package tile

// Archetype is a named bundle of flag and tag values applied in one step.
type Archetype struct {
	Name     string
	Tag      string
	Trigger  bool
	Static   bool
	Massless bool
	IsTile   bool
}

var (
	Collectable = Archetype{Name: "Collectable", Tag: TagCollectable, Trigger: true, Static: false, Massless: true, IsTile: true}
	Platform    = Archetype{Name: "Platform", Tag: TagPlatform, Trigger: false, Static: true, Massless: false, IsTile: true}
	Checkpoint  = Archetype{Name: "Checkpoint", Tag: TagCheckpoint, Trigger: true, Static: true, Massless: false, IsTile: true}
)

// Archetypes lists the presets in the order the editor shows them.
var Archetypes = []Archetype{Collectable, Platform, Checkpoint}

// ArchetypeByName finds a preset by name, case-sensitively.
func ArchetypeByName(name string) (Archetype, bool) {
	for _, a := range Archetypes {
		if a.Name == name {
			return a, true
		}
	}
	return Archetype{}, false
}

// Apply writes the preset onto t.
func (a Archetype) Apply(t *Tile) {
	if t == nil {
		return
	}
	t.tag = a.Tag
	t.trigger = a.Trigger
	t.static = a.Static
	t.massless = a.Massless
	t.isTile = a.IsTile
}
