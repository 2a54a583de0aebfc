// Package chart computes and renders the tokenomics donut chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const percentTolerance = 0.01

type Allocation struct {
	Label      string  `yaml:"label" json:"label"`
	Percentage float64 `yaml:"percentage" json:"percentage"`
	Color      string  `yaml:"color" json:"color"`
}

// Arc is one stroked circle segment of the donut. DashArray and DashOffset
// are ready to use as SVG attribute values.
type Arc struct {
	Allocation Allocation
	Length     float64
	Offset     float64
	DashArray  string
	DashOffset string
}

func Validate(allocs []Allocation) error {
	if len(allocs) == 0 {
		return errors.New("at least one allocation is required")
	}
	var errs []string
	total := 0.0
	for i, a := range allocs {
		if strings.TrimSpace(a.Label) == "" {
			errs = append(errs, fmt.Sprintf("allocations[%d].label is required", i))
		}
		if strings.TrimSpace(a.Color) == "" {
			errs = append(errs, fmt.Sprintf("allocations[%d].color is required", i))
		}
		if math.IsNaN(a.Percentage) || math.IsInf(a.Percentage, 0) || a.Percentage <= 0 || a.Percentage > 100 {
			errs = append(errs, fmt.Sprintf("allocations[%d].percentage must be in (0,100]", i))
		}
		total += a.Percentage
	}
	if math.Abs(total-100) > percentTolerance {
		errs = append(errs, fmt.Sprintf("allocations must sum to 100, got %s", formatFloat(total)))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Donut lays allocations out around a circle of the given radius. Each arc
// starts where the previous one ended.
func Donut(allocs []Allocation, radius float64) []Arc {
	circumference := 2 * math.Pi * radius
	arcs := make([]Arc, 0, len(allocs))
	cumulative := 0.0
	for _, a := range allocs {
		length := circumference * a.Percentage / 100
		offset := -circumference * cumulative / 100
		arcs = append(arcs, Arc{
			Allocation: a,
			Length:     length,
			Offset:     offset,
			DashArray:  formatFloat(length) + " " + formatFloat(circumference-length),
			DashOffset: formatFloat(offset),
		})
		cumulative += a.Percentage
	}
	return arcs
}

type SVGOptions struct {
	Size        int
	StrokeWidth float64
	Title       string
}

func (o SVGOptions) withDefaults() SVGOptions {
	if o.Size <= 0 {
		o.Size = 200
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = 30
	}
	if strings.TrimSpace(o.Title) == "" {
		o.Title = "Token allocation"
	}
	return o
}

// RenderSVG writes a standalone SVG donut for allocs.
func RenderSVG(w io.Writer, allocs []Allocation, opts SVGOptions) error {
	if err := Validate(allocs); err != nil {
		return fmt.Errorf("render donut: %w", err)
	}
	opts = opts.withDefaults()
	center := float64(opts.Size) / 2
	radius := center - opts.StrokeWidth/2

	labels := make([]string, 0, len(allocs))
	for _, a := range allocs {
		labels = append(labels, fmt.Sprintf("%s %s%%", a.Label, formatFloat(a.Percentage)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" role="img">`, opts.Size, opts.Size)
	fmt.Fprintf(&b, `<title>%s: %s</title>`, xmlEscape(opts.Title), xmlEscape(strings.Join(labels, ", ")))
	fmt.Fprintf(&b, `<g transform="rotate(-90 %s %s)">`, formatFloat(center), formatFloat(center))
	for _, arc := range Donut(allocs, radius) {
		fmt.Fprintf(&b,
			`<circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s" stroke-dasharray="%s" stroke-dashoffset="%s"><title>%s</title></circle>`,
			formatFloat(center), formatFloat(center), formatFloat(radius),
			xmlEscape(arc.Allocation.Color), formatFloat(opts.StrokeWidth),
			arc.DashArray, arc.DashOffset, xmlEscape(arc.Allocation.Label),
		)
	}
	b.WriteString(`</g></svg>`)

	_, err := io.WriteString(w, b.String())
	return err
}

func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

var xmlEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func xmlEscape(s string) string {
	return xmlEscaper.Replace(s)
}
