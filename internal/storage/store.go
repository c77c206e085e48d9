package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/aerosim/internal/flight"
)

// Columns is the header of states.csv.
var Columns = []string{
	"time",
	"x", "y", "z",
	"vx", "vy", "vz",
	"qw", "qx", "qy", "qz",
	"wx", "wy", "wz",
	"pitch", "yaw", "roll", "throttle",
	"aoa_deg", "airspeed", "load_factor", "stalled",
	"fx", "fy", "fz",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Dir is the directory holding run id.
func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

// RunInfo names what was flown.
type RunInfo struct {
	Aircraft   string
	Integrator string
	Pilot      string
	Dt         float64
	Duration   float64
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Aircraft   string             `json:"aircraft"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Pilot      string             `json:"pilot"`
	Steps      int                `json:"steps"`
	Metrics    map[string]float64 `json:"metrics"`
	Errors     []string           `json:"errors,omitempty"`
}

func (s *Store) Save(info RunInfo, result *flight.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", info.Aircraft, now.UnixNano())
	runDir := s.Dir(runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Aircraft:   info.Aircraft,
		Timestamp:  now,
		Dt:         info.Dt,
		Duration:   info.Duration,
		Integrator: info.Integrator,
		Pilot:      info.Pilot,
		Steps:      result.StepsTaken,
		Metrics:    result.Metrics,
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, "states.csv"), result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Row flattens a sample in Columns order.
func Row(s flight.Sample) []float64 {
	c := s.Controls
	return []float64{
		s.Time,
		s.Position[0], s.Position[1], s.Position[2],
		s.Velocity[0], s.Velocity[1], s.Velocity[2],
		s.Rotation.W, s.Rotation.V[0], s.Rotation.V[1], s.Rotation.V[2],
		s.AngularVelocity[0], s.AngularVelocity[1], s.AngularVelocity[2],
		c.Pitch, c.Yaw, c.Roll, c.Throttle,
		mgl64.RadToDeg(s.AngleOfAttack), s.Airspeed, s.LoadFactor, float64(s.Stalled),
		s.Aero.Force[0], s.Aero.Force[1], s.Aero.Force[2],
	}
}

func writeStates(path string, samples []flight.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return err
	}

	record := make([]string, len(Columns))
	for _, s := range samples {
		for i, v := range Row(s) {
			record[i] = strconv.FormatFloat(v, 'f', 6, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// Telemetry is the parsed states.csv of one run.
type Telemetry struct {
	Columns []string
	Rows    [][]float64
}

// Column returns one channel by header name, or nil.
func (t *Telemetry) Column(name string) []float64 {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	out := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			out = append(out, row[idx])
		}
	}
	return out
}

func (s *Store) LoadTelemetry(runID string) (*Telemetry, error) {
	file, err := os.Open(filepath.Join(s.Dir(runID), "states.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	t := &Telemetry{Rows: make([][]float64, 0)}
	if len(records) == 0 {
		return t, nil
	}
	t.Columns = records[0]

	for _, record := range records[1:] {
		row := make([]float64, 0, len(record))
		for _, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				val = 0
			}
			row = append(row, val)
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}
