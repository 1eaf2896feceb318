package assets

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/automoto/doomerang-crypt/config"
)

func await(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("load never completed")
	}
	return Result{}
}

func TestBundledModelsLoad(t *testing.T) {
	l := NewManifestLoader(FS)
	for _, a := range config.AllArchetypes() {
		path := config.ProfileFor(a).Model
		r := await(t, l.Load(path))
		if r.Err != nil {
			t.Errorf("%s: %v", path, r.Err)
			continue
		}
		if r.Model.Bounds.Empty() {
			t.Errorf("%s: empty bounds", path)
		}
		if r.Model.ClipDuration(config.ClipAttack) <= 0 {
			t.Errorf("%s: no attack clip duration", path)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"flat.yaml":   {Data: []byte("bounds:\n  min: [0, 0, 0]\n  max: [0, 0, 0]\n")},
		"broken.yaml": {Data: []byte("bounds: [\n")},
		"bare.yaml":   {Data: []byte("bounds:\n  min: [-1, 0, -1]\n  max: [1, 2, 1]\n")},
	}
	l := NewManifestLoader(fsys)

	if r := await(t, l.Load("missing.yaml")); !errors.Is(r.Err, ErrNotFound) {
		t.Errorf("missing: err = %v", r.Err)
	}
	if r := await(t, l.Load("flat.yaml")); !errors.Is(r.Err, ErrNoBounds) {
		t.Errorf("flat: err = %v", r.Err)
	}
	if r := await(t, l.Load("broken.yaml")); r.Err == nil {
		t.Error("broken: no error")
	}

	r := await(t, l.Load("bare.yaml"))
	if r.Err != nil {
		t.Fatalf("bare: %v", r.Err)
	}
	if got := r.Model.ClipDuration(config.ClipAttack); got != config.DefaultClips[config.ClipAttack].Duration {
		t.Errorf("default attack duration = %v", got)
	}
	again := await(t, l.Load("bare.yaml"))
	if again.Model != r.Model {
		t.Error("second load was not served from cache")
	}
}
