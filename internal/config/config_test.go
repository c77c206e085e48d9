package config

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/control"
	"github.com/san-kum/aerosim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != DefaultIntegrator {
		t.Errorf("expected integrator %s, got %s", DefaultIntegrator, cfg.Integrator)
	}
	if cfg.Sim.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Sim.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("trainer")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Airframe.MaxThrust != 3000 {
		t.Errorf("expected max thrust 3000, got %f", cfg.Airframe.MaxThrust)
	}

	cfg.Surfaces[0].Name = "changed"
	if Presets["trainer"].Surfaces[0].Name == "changed" {
		t.Error("GetPreset must not share surfaces with the preset table")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	if presets[0] != "glider" || presets[1] != "trainer" {
		t.Errorf("presets not sorted: %v", presets)
	}
}

func TestPresetsBuild(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			sim, k0, err := cfg.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if err := k0.Validate(); err != nil {
				t.Fatalf("initial state: %v", err)
			}
			if got := len(sim.Aggregator().Mounts); got != len(cfg.Surfaces) {
				t.Errorf("mounts = %d, want %d", got, len(cfg.Surfaces))
			}

			cfg.Sim.Duration = 1
			result, err := sim.Run(context.Background(), k0, cfg.Sim)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if len(result.Errors) != 0 {
				t.Fatalf("flight diverged: %v", result.Errors)
			}
			if result.StepsTaken != 100 {
				t.Errorf("steps = %d, want 100", result.StepsTaken)
			}
		})
	}
}

func TestPresetLiftsInTrim(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		agg := cfg.BuildAggregator()
		k := cfg.InitialKinematics()

		ft := agg.Forces(&k, cfg.Env())
		if ft.Force.Y() <= 0 {
			t.Errorf("%s: expected positive lift at start, got %v", name, ft.Force)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trainer.yaml")
	want := GetPreset("trainer")
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Surfaces) != len(want.Surfaces) || got.Surfaces[5].RotationDeg != want.Surfaces[5].RotationDeg {
		t.Errorf("surfaces not preserved: %+v", got.Surfaces)
	}
	if got.Bindings[2].Axis != control.Pitch || got.Bindings[2].DeflectionDeg != -20 {
		t.Errorf("binding not preserved: %+v", got.Bindings[2])
	}
	if got.Surfaces[4].Surface != want.Surfaces[4].Surface {
		t.Errorf("surface parameters not preserved: %+v", got.Surfaces[4].Surface)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero dt", func(c *Config) { c.Sim.Dt = 0 }, dynamo.ErrParameterBounds},
		{"zero mass", func(c *Config) { c.Airframe.Mass = 0 }, dynamo.ErrParameterBounds},
		{"flat inertia", func(c *Config) { c.Airframe.Inertia[1] = 0 }, dynamo.ErrParameterBounds},
		{"negative thrust", func(c *Config) { c.Airframe.MaxThrust = -1 }, dynamo.ErrParameterBounds},
		{"duplicate surface", func(c *Config) { c.Surfaces[1].Name = c.Surfaces[0].Name }, dynamo.ErrParameterBounds},
		{"dangling binding", func(c *Config) { c.Bindings[0].Mount = "canard" }, dynamo.ErrUnknownName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetPreset("trainer")
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuildUnknownNames(t *testing.T) {
	cfg := GetPreset("trainer")
	cfg.Integrator = "leapfrog"
	if _, _, err := cfg.Build(); !errors.Is(err, dynamo.ErrUnknownName) {
		t.Errorf("expected ErrUnknownName for integrator, got %v", err)
	}

	cfg = GetPreset("trainer")
	cfg.Pilot.Kind = "autoland"
	if _, _, err := cfg.Build(); !errors.Is(err, dynamo.ErrUnknownName) {
		t.Errorf("expected ErrUnknownName for pilot, got %v", err)
	}
}

func TestRotation(t *testing.T) {
	chord := Rotation(wing).Rotate(mgl64.Vec3{1, 0, 0})
	if chord.Sub(mgl64.Vec3{0, 0, 1}).Len() > 1e-12 {
		t.Errorf("wing chord = %v, want +Z", chord)
	}

	normal := Rotation(fin).Rotate(mgl64.Vec3{0, 1, 0})
	if normal.Sub(mgl64.Vec3{-1, 0, 0}).Len() > 1e-12 {
		t.Errorf("fin normal = %v, want -X", normal)
	}
	span := Rotation(fin).Rotate(mgl64.Vec3{0, 0, 1})
	if math.Abs(math.Abs(span.Y())-1) > 1e-12 {
		t.Errorf("fin span = %v, want vertical", span)
	}
}

func TestInitialKinematics(t *testing.T) {
	cfg := GetPreset("trainer")
	cfg.Initial.HeadingDeg = 90
	k := cfg.InitialKinematics()

	if math.Abs(k.Velocity.Len()-cfg.Initial.Airspeed) > 1e-9 || math.Abs(k.Velocity.Y()) > 1e-9 {
		t.Errorf("velocity = %v, want level at %v", k.Velocity, cfg.Initial.Airspeed)
	}
	if pitch := mgl64.RadToDeg(control.PitchAngle(&k)); math.Abs(pitch-cfg.Initial.PitchDeg) > 1e-9 {
		t.Errorf("pitch = %v, want %v", pitch, cfg.Initial.PitchDeg)
	}
	if com := k.CenterOfMass.Sub(k.Position).Len(); math.Abs(com-0.2) > 1e-12 {
		t.Errorf("center of mass offset = %v, want 0.2", com)
	}
}
