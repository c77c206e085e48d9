package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
)

type ExportData struct {
	Run     *RunMetadata         `json:"run"`
	Columns []string             `json:"columns"`
	Series  map[string][]float64 `json:"series"`
}

// ExportJSON writes the metadata and every telemetry channel of runID to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	tel, err := s.LoadTelemetry(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Run:     meta,
		Columns: tel.Columns,
		Series:  make(map[string][]float64, len(tel.Columns)),
	}
	for _, c := range tel.Columns {
		data.Series[c] = tel.Column(c)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV copies the states.csv of runID to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	f, err := os.Open(filepath.Join(s.Dir(runID), "states.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
