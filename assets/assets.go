package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sync"

	"github.com/automoto/doomerang-crypt/assets/animations"
	"github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"gopkg.in/yaml.v3"
)

// FS holds the bundled model manifests and levels.
//
//go:embed all:models all:levels
var FS embed.FS

var (
	ErrNotFound = errors.New("asset not found")
	ErrNoBounds = errors.New("model has no bounds")
)

// Model is the part of a loaded model the simulation needs.
type Model struct {
	Path   string
	Bounds gamemath.Bounds
	Clips  []animations.Clip
}

// ClipDuration returns the named clip length, falling back to defaults.
func (m *Model) ClipDuration(name string) float64 {
	for _, c := range m.Clips {
		if c.Name == name {
			return c.Duration
		}
	}
	return config.DefaultClips[name].Duration
}

// Result is delivered once per Load call.
type Result struct {
	Model *Model
	Err   error
}

// ModelLoader fetches models asynchronously. The returned channel yields
// exactly one Result.
type ModelLoader interface {
	Load(path string) <-chan Result
}

type manifest struct {
	Name   string `yaml:"name"`
	Bounds struct {
		Min []float64 `yaml:"min"`
		Max []float64 `yaml:"max"`
	} `yaml:"bounds"`
	Clips []struct {
		Name     string  `yaml:"name"`
		Duration float64 `yaml:"duration"`
		Loop     bool    `yaml:"loop"`
	} `yaml:"clips"`
}

// ManifestLoader reads YAML model manifests from a file system. Parsed
// models are cached by path.
type ManifestLoader struct {
	fsys fs.FS

	mu    sync.Mutex
	cache map[string]*Model
}

func NewManifestLoader(fsys fs.FS) *ManifestLoader {
	return &ManifestLoader{
		fsys:  fsys,
		cache: make(map[string]*Model),
	}
}

func (l *ManifestLoader) Load(path string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		m, err := l.load(path)
		if err != nil {
			log.Printf("[assets] load %s: %v", path, err)
		}
		ch <- Result{Model: m, Err: err}
	}()
	return ch
}

func (l *ManifestLoader) load(path string) (*Model, error) {
	l.mu.Lock()
	cached, ok := l.cache[path]
	l.mu.Unlock()
	if ok {
		return cached, nil
	}

	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	m, err := parseManifest(path, data)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[path] = m
	l.mu.Unlock()
	return m, nil
}

func vec3(v []float64) (gamemath.Vec3, bool) {
	if len(v) != 3 {
		return gamemath.Vec3{}, false
	}
	return gamemath.V3(v[0], v[1], v[2]), true
}

func parseManifest(path string, data []byte) (*Model, error) {
	var mf manifest
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}

	lo, okMin := vec3(mf.Bounds.Min)
	hi, okMax := vec3(mf.Bounds.Max)
	bounds := gamemath.Bounds{Min: lo, Max: hi}
	if !okMin || !okMax || bounds.Empty() {
		return nil, fmt.Errorf("%s: %w", path, ErrNoBounds)
	}

	m := &Model{Path: path, Bounds: bounds}
	for _, c := range mf.Clips {
		m.Clips = append(m.Clips, animations.Clip{Name: c.Name, Duration: c.Duration, Loop: c.Loop})
	}
	// Fill in any clip the simulation relies on that the manifest omits.
	for _, name := range []string{config.ClipIdle, config.ClipRun, config.ClipAttack, config.ClipDeath} {
		if !m.hasClip(name) {
			def := config.DefaultClips[name]
			m.Clips = append(m.Clips, animations.Clip{Name: name, Duration: def.Duration, Loop: def.Loop})
		}
	}
	return m, nil
}

func (m *Model) hasClip(name string) bool {
	for _, c := range m.Clips {
		if c.Name == name {
			return true
		}
	}
	return false
}
