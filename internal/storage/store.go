// Package storage persists verification reports for later triage.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/wavecheck/internal/verify"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Report is one saved verification outcome with the parameters that
// produced it.
type Report struct {
	ID        string              `json:"id"`
	Timestamp time.Time           `json:"timestamp"`
	Passed    bool                `json:"passed"`
	Gamma     float64             `json:"gamma"`
	Vflow     float64             `json:"vflow"`
	Amplitude float64             `json:"amplitude"`
	Cutoff    float64             `json:"cutoff"`
	ResLow    int                 `json:"res_low"`
	ResHigh   int                 `json:"res_high"`
	Waves     []verify.WaveReport `json:"waves"`
}

func (s *Store) Save(report Report) (string, error) {
	if report.ID == "" {
		report.ID = fmt.Sprintf("verify_%d", time.Now().Unix())
	}
	if report.Timestamp.IsZero() {
		report.Timestamp = time.Now()
	}

	runDir := filepath.Join(s.baseDir, report.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, "report.json"))
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return "", err
	}

	if err := s.writeWaveCSV(runDir, report.Waves); err != nil {
		return "", err
	}
	return report.ID, nil
}

func (s *Store) writeWaveCSV(runDir string, waves []verify.WaveReport) error {
	f, err := os.Create(filepath.Join(runDir, "waves.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"wave", "err_low", "err_high", "ratio", "bound", "passed"}); err != nil {
		return err
	}
	for _, r := range waves {
		row := []string{
			r.Wave.String(),
			strconv.FormatFloat(r.ErrLow, 'e', 6, 64),
			strconv.FormatFloat(r.ErrHigh, 'e', 6, 64),
			strconv.FormatFloat(r.Ratio, 'e', 6, 64),
			strconv.FormatFloat(r.Bound, 'e', 6, 64),
			strconv.FormatBool(r.Passed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) List() ([]Report, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Report{}, nil
		}
		return nil, err
	}

	reports := make([]Report, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		report, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		reports = append(reports, *report)
	}
	return reports, nil
}

func (s *Store) Load(id string) (*Report, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "report.json"))
	if err != nil {
		return nil, err
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
