// Package export writes rendered fields to image, vector and data files.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/windfield/internal/field"
	"github.com/san-kum/windfield/internal/surface"
)

// Snapshot is one rendered field as written by WriteJSON.
type Snapshot struct {
	ID          string          `json:"id"`
	Frame       int             `json:"frame"`
	StrokeColor string          `json:"stroke_color"`
	Layout      field.Layout    `json:"layout"`
	Segments    []field.Segment `json:"segments"`
}

// NewSnapshot copies the current render of in.
func NewSnapshot(in *field.Instance) Snapshot {
	return Snapshot{
		ID:          in.ID(),
		Frame:       in.Frame(),
		StrokeColor: surface.Hex(in.StrokeColor()),
		Layout:      in.Layout(),
		Segments:    append([]field.Segment(nil), in.Segments()...),
	}
}

func WritePNG(path string, r *surface.Raster) error {
	return writeFile(path, r.EncodePNG)
}

func WriteSVG(path string, v *surface.Vector) error {
	return writeFile(path, v.Encode)
}

func WriteJSON(path string, snap Snapshot) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeJSON(w, snap)
	})
}

func EncodeJSON(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
