package config

// ClipDef describes a clip when a model manifest does not.
type ClipDef struct {
	Duration float64 // seconds
	Loop     bool
}

// DefaultClips is used for clip names missing from a model manifest.
var DefaultClips = map[string]ClipDef{
	ClipIdle:   {Duration: 1.0, Loop: true},
	ClipRun:    {Duration: 0.8, Loop: true},
	ClipAttack: {Duration: 0.9, Loop: false},
	ClipDeath:  {Duration: 1.2, Loop: false},
}
