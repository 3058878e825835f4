package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/multibody/internal/mobilizer"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Method != "rk4" {
		t.Errorf("expected method rk4, got %s", cfg.Method)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	cfg := GetPreset("double-pendulum")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "double-pendulum" || len(got.Bodies) != 2 {
		t.Errorf("round trip lost data: %+v", got)
	}
	if got.Bodies[1].Parent != "upper" {
		t.Errorf("expected parent upper, got %s", got.Bodies[1].Parent)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "min.yaml")
	min := `
bodies:
  - name: rod
    joint: pin
    mass: 1
`
	if err := os.WriteFile(path, []byte(min), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Dt != DefaultDt || cfg.Method != "rk4" {
		t.Errorf("defaults not applied: dt=%g method=%s", cfg.Dt, cfg.Method)
	}
}

func TestBuildTree(t *testing.T) {
	cfg := GetPreset("double-pendulum")
	tr, ids, err := cfg.BuildTree()
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if tr.NumBodies() != 3 || tr.NumU() != 2 {
		t.Errorf("bodies=%d nu=%d", tr.NumBodies(), tr.NumU())
	}
	if tr.JointType(ids["lower"]) != mobilizer.Torsion {
		t.Errorf("lower joint: %v", tr.JointType(ids["lower"]))
	}
	if tr.Parent(ids["lower"]) != ids["upper"] {
		t.Error("lower not attached to upper")
	}

	s, err := cfg.NewState(tr, ids)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	if s.Q()[0] != 1.5 || s.Q()[1] != 1.5 {
		t.Errorf("initial q not applied: %v", s.Q())
	}

	g, err := cfg.NewGravity(tr)
	if err != nil {
		t.Fatalf("NewGravity: %v", err)
	}
	if g == nil || g.Magnitude() != DefaultGravity {
		t.Error("gravity not built from config")
	}
}

func TestBuildTreeErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"unknown joint", Config{Bodies: []BodyConfig{{Name: "a", Joint: "hinge", Mass: 1}}}},
		{"unknown parent", Config{Bodies: []BodyConfig{{Name: "a", Parent: "b", Joint: "pin", Mass: 1}}}},
		{"duplicate name", Config{Bodies: []BodyConfig{
			{Name: "a", Joint: "pin", Mass: 1},
			{Name: "a", Joint: "pin", Mass: 1},
		}}},
		{"unnamed body", Config{Bodies: []BodyConfig{{Joint: "pin", Mass: 1}}}},
		{"bad com", Config{Bodies: []BodyConfig{{Name: "a", Joint: "pin", Mass: 1, COM: []float64{1, 2}}}}},
		{"bad inertia", Config{Bodies: []BodyConfig{{Name: "a", Joint: "pin", Mass: 1, Inertia: []float64{1, 2}}}}},
	}
	for _, tc := range cases {
		if _, _, err := tc.cfg.BuildTree(); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestInitialStateBounds(t *testing.T) {
	cfg := &Config{Bodies: []BodyConfig{{
		Name: "a", Joint: "pin", Mass: 1, U: []float64{1, 2},
	}}}
	tr, ids, err := cfg.BuildTree()
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if _, err := cfg.NewState(tr, ids); err == nil {
		t.Error("too many initial speeds accepted")
	}
}

func TestPresets(t *testing.T) {
	if len(ListPresets()) == 0 {
		t.Fatal("no presets")
	}
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		tr, ids, err := cfg.BuildTree()
		if err != nil {
			t.Errorf("preset %s does not build: %v", name, err)
			continue
		}
		if _, err := cfg.NewState(tr, ids); err != nil {
			t.Errorf("preset %s state: %v", name, err)
		}
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}
