package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/san-kum/windfield/internal/field"
)

const (
	metadataFile = "metadata.json"
	segmentsFile = "segments.csv"
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

type RunMetadata struct {
	ID          string    `json:"id"`
	Instance    string    `json:"instance"`
	Timestamp   time.Time `json:"timestamp"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	CellSize    float64   `json:"cell_size"`
	Columns     int       `json:"columns"`
	Rows        int       `json:"rows"`
	Frame       int       `json:"frame"`
	Noise       string    `json:"noise"`
	Seed        int64     `json:"seed"`
	StrokeColor string    `json:"stroke_color"`
	Segments    int       `json:"segments"`
}

// SegmentRecord is one row of segments.csv.
type SegmentRecord struct {
	Row    int     `csv:"row"`
	Column int     `csv:"column"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	Size   float64 `csv:"size"`
	Noise  float64 `csv:"noise"`
	Angle  float64 `csv:"angle"`
	Length float64 `csv:"length"`
	Weight float64 `csv:"weight"`
}

// Records numbers segs row-major against layout.
func Records(layout field.Layout, segs []field.Segment) []SegmentRecord {
	out := make([]SegmentRecord, len(segs))
	for i, sg := range segs {
		row, col := 0, i
		if layout.Columns > 0 {
			row, col = i/layout.Columns, i%layout.Columns
		}
		out[i] = SegmentRecord{
			Row: row, Column: col,
			X: sg.X, Y: sg.Y, Size: sg.Size,
			Noise: sg.Noise, Angle: sg.Angle,
			Length: sg.Length, Weight: sg.Weight,
		}
	}
	return out
}

// Save writes one run and returns its id. Layout fields and the segment
// count in meta are filled from layout and segs.
func (s *Store) Save(meta RunMetadata, layout field.Layout, segs []field.Segment) (string, error) {
	now := time.Now()
	meta.ID = fmt.Sprintf("%s_%d_%s", meta.Instance, now.Unix(), uuid.NewString()[:8])
	meta.Timestamp = now
	meta.CellSize = layout.CellSize
	meta.Columns = layout.Columns
	meta.Rows = layout.Rows
	meta.Segments = len(segs)

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, segmentsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	records := Records(layout, segs)
	if err := gocsv.MarshalFile(&records, csvFile); err != nil {
		return "", fmt.Errorf("write segments: %w", err)
	}

	return meta.ID, nil
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSegments(runID string) ([]SegmentRecord, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, segmentsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var records []SegmentRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, fmt.Errorf("read segments: %w", err)
	}
	return records, nil
}

// Segments converts stored records back to field segments.
func Segments(records []SegmentRecord) []field.Segment {
	out := make([]field.Segment, len(records))
	for i, r := range records {
		out[i] = field.Segment{
			X: r.X, Y: r.Y, Size: r.Size,
			Noise: r.Noise, Angle: r.Angle,
			Length: r.Length, Weight: r.Weight,
		}
	}
	return out
}
