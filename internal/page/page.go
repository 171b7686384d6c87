// Package page finds wind field containers in an HTML page.
package page

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/windfield/internal/field"
	"golang.org/x/net/html"
)

const (
	ContainerClass = "wf_container"
	AttrPlay       = "wf_play"
	AttrStroke     = "wf_stroke_color"
)

// Defaults size containers that carry no width or height attribute.
type Defaults struct {
	Width, Height float64
}

// Containers returns one option set per element with the container class,
// in document order. A malformed width or height yields a negative size so
// the instance is rejected later and draws nothing.
func Containers(r io.Reader, d Defaults) ([]field.Options, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	var opts []field.Options
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, ContainerClass) {
			opts = append(opts, containerOptions(n, len(opts), d))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return opts, nil
}

func containerOptions(n *html.Node, index int, d Defaults) field.Options {
	o := field.Options{
		ID:     attr(n, "id"),
		Width:  d.Width,
		Height: d.Height,
	}
	if o.ID == "" {
		o.ID = fmt.Sprintf("%s_%d", ContainerClass, index)
	}
	o.Autoplay = attr(n, AttrPlay) == "true"
	o.StrokeColor = attr(n, AttrStroke)

	if v, ok := lookup(n, "width"); ok {
		o.Width = dimension(v)
	}
	if v, ok := lookup(n, "height"); ok {
		o.Height = dimension(v)
	}
	return o
}

func dimension(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil || math.IsNaN(f) {
		return -1
	}
	return f
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	v, _ := lookup(n, key)
	return v
}

func lookup(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
