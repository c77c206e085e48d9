package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/control"
	"github.com/san-kum/aerosim/internal/dynamo"
	"github.com/san-kum/aerosim/internal/flight"
)

func testResult() *flight.Result {
	return &flight.Result{
		Samples: []flight.Sample{
			{Time: 0, Position: mgl64.Vec3{0, 1000, 0}, Rotation: mgl64.QuatIdent(), Airspeed: 45,
				Controls: control.Controls{Throttle: 0.6}, AngleOfAttack: mgl64.DegToRad(5)},
			{Time: 0.01, Position: mgl64.Vec3{0, 1000.1, 0.45}, Rotation: mgl64.QuatIdent(), Airspeed: 45.1,
				Controls: control.Controls{Pitch: 0.2, Throttle: 0.6}, Stalled: 1, Surfaces: 6},
		},
		Metrics:    map[string]float64{"stall_fraction": 0.25},
		Errors:     []error{dynamo.SimError{Step: 1, Time: 0.01, Message: "test"}},
		StepsTaken: 2,
	}
}

var info = RunInfo{Aircraft: "trainer", Integrator: "rk4", Pilot: "manual", Dt: 0.01, Duration: 1}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(info, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "trainer_") {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Aircraft != "trainer" || meta.Integrator != "rk4" || meta.Steps != 2 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Metrics["stall_fraction"] != 0.25 {
		t.Errorf("expected stall_fraction 0.25, got %f", meta.Metrics["stall_fraction"])
	}
	if len(meta.Errors) != 1 {
		t.Errorf("expected 1 recorded error, got %d", len(meta.Errors))
	}

	tel, err := st.LoadTelemetry(runID)
	if err != nil {
		t.Fatalf("load telemetry failed: %v", err)
	}
	if len(tel.Rows) != 2 || len(tel.Columns) != len(Columns) {
		t.Fatalf("expected 2 rows of %d columns, got %d rows, %d columns", len(Columns), len(tel.Rows), len(tel.Columns))
	}
	if y := tel.Column("y"); math.Abs(y[1]-1000.1) > 1e-6 {
		t.Errorf("altitude = %v, want 1000.1", y[1])
	}
	if aoa := tel.Column("aoa_deg"); math.Abs(aoa[0]-5) > 1e-6 {
		t.Errorf("aoa = %v, want 5", aoa[0])
	}
	if tel.Column("missing") != nil {
		t.Error("expected nil for missing column")
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	first, _ := st.Save(info, testResult())
	second, err := st.Save(RunInfo{Aircraft: "glider", Dt: 0.01, Duration: 1}, &flight.Result{})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first || runs[1].ID != second {
		t.Errorf("runs not in save order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("List() = %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(info, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "states.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExport(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(info, testResult())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export json: %v", err)
	}
	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if data.Run.ID != runID || len(data.Series["throttle"]) != 2 {
		t.Errorf("unexpected export %+v", data)
	}

	buf.Reset()
	if err := st.ExportCSV(&buf, runID); err != nil {
		t.Fatalf("export csv: %v", err)
	}
	if !strings.HasPrefix(buf.String(), strings.Join(Columns, ",")) {
		t.Errorf("csv export missing header: %q", buf.String())
	}

	if err := st.ExportCSV(&buf, "nope"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestExportSVG(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(info, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, view := range []TrackView{GroundTrack, Profile} {
		var buf bytes.Buffer
		if err := st.ExportSVG(&buf, runID, view, 400, 300); err != nil {
			t.Fatalf("%s: export failed: %v", view, err)
		}
		out := buf.String()
		if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>") {
			t.Errorf("%s: not an svg document", view)
		}
		if n := strings.Count(out, " L"); n != 1 {
			t.Errorf("%s: %d line segments, want 1", view, n)
		}
	}

	if err := st.ExportSVG(&bytes.Buffer{}, runID, TrackView("side"), 10, 10); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestDistanceFlown(t *testing.T) {
	got := distanceFlown([]float64{0, 3, 3}, []float64{0, 4, 8})
	want := []float64{0, 5, 9}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("distance[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
