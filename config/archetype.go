package config

import "strings"

// Archetype is the closed set of enemy classes.
type Archetype int

const (
	Default Archetype = iota
	Goblin
	Vampire
	Boss
	archetypeCount
)

var archetypeNames = [archetypeCount]string{
	Default: "default",
	Goblin:  "goblin",
	Vampire: "vampire",
	Boss:    "boss",
}

func (a Archetype) String() string {
	if a < 0 || a >= archetypeCount {
		return "unknown"
	}
	return archetypeNames[a]
}

// AllArchetypes lists every archetype in declaration order.
func AllArchetypes() []Archetype {
	out := make([]Archetype, 0, archetypeCount)
	for a := Default; a < archetypeCount; a++ {
		out = append(out, a)
	}
	return out
}

// ParseArchetype maps a level or config type string to an archetype.
// Unknown names report ok=false and resolve to Default.
func ParseArchetype(name string) (Archetype, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for a := Default; a < archetypeCount; a++ {
		if archetypeNames[a] == name {
			return a, true
		}
	}
	return Default, false
}

// ProfileFor returns a copy of the archetype's profile.
func ProfileFor(a Archetype) AgentBehaviorProfile {
	if p, ok := Archetypes[a]; ok {
		return p
	}
	return Archetypes[Default]
}
