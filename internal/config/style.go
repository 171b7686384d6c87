package config

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/windfield/internal/field"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// StylePrefix is the custom property prefix the page stylesheet uses.
const StylePrefix = "--_windfield---wf_"

var (
	ErrStyleMissing    = errors.New("config: style property missing")
	ErrStyleNonNumeric = errors.New("config: style property not numeric")
)

// styleKeys maps the page custom properties onto tunables.
var styleKeys = []struct {
	name string
	dst  func(*field.Tunables) *float64
}{
	{"length_min", func(t *field.Tunables) *float64 { return &t.LengthMin }},
	{"length_max", func(t *field.Tunables) *float64 { return &t.LengthMax }},
	{"weight_min", func(t *field.Tunables) *float64 { return &t.WeightMin }},
	{"weight_max", func(t *field.Tunables) *float64 { return &t.WeightMax }},
	{"rotation", func(t *field.Tunables) *float64 { return &t.RotationFactor }},
}

// ParseStyle collects every custom property declared in a stylesheet. Later
// declarations win.
func ParseStyle(r io.Reader) (map[string]string, error) {
	props := make(map[string]string)
	p := css.NewParser(parse.NewInput(r), false)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if errors.Is(p.Err(), io.EOF) {
				return props, nil
			}
			return nil, fmt.Errorf("parse style: %w", p.Err())
		case css.CustomPropertyGrammar:
			var sb strings.Builder
			for _, v := range p.Values() {
				sb.Write(v.Data)
			}
			props[string(data)] = strings.TrimSpace(sb.String())
		}
	}
}

// ApplyStyle overrides the tunables with the page style. All five
// properties must be present and numeric, otherwise t is left untouched.
func ApplyStyle(t *field.Tunables, props map[string]string) error {
	next := *t
	for _, k := range styleKeys {
		name := StylePrefix + k.name
		raw, ok := props[name]
		if !ok {
			return fmt.Errorf("%s: %w", name, ErrStyleMissing)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", name, raw, ErrStyleNonNumeric)
		}
		*k.dst(&next) = v
	}
	*t = next
	return nil
}
