// Package render turns a schedule hierarchy into Graphviz output.
//
// Schedules become nodes grouped by level, parent links become edges.
// [ToDOT] produces the DOT source and [RenderSVG] rasterizes it, so
// callers can save either form:
//
//	dot := render.ToDOT(mgr.All(), render.Options{})
//	svg, err := render.RenderSVG(dot)
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mgrundel/timelane/pkg/errors"
	"github.com/mgrundel/timelane/pkg/schedule"
)

// Options configures hierarchy rendering.
type Options struct {
	// Detailed includes the time range and level in node labels.
	// When false, only the schedule name is shown.
	Detailed bool
}

const timeLabelFormat = "2006-01-02 15:04"

// ToDOT converts schedules to Graphviz DOT format. Nodes of the same
// level share a rank so the drawing reads coarsest tier at the top, and
// an edge runs from each parent to each of its children. Exclusive
// schedules get a bold outline. The input order is preserved, so feeding
// the repository's canonical listing yields deterministic output.
func ToDOT(schedules []schedule.Schedule, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph schedules {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	byLevel := make(map[int][]schedule.Schedule)
	var levels []int
	for _, s := range schedules {
		if _, seen := byLevel[s.Level]; !seen {
			levels = append(levels, s.Level)
		}
		byLevel[s.Level] = append(byLevel[s.Level], s)
	}

	for _, level := range levels {
		fmt.Fprintf(&buf, "  { rank=same; // level %d\n", level)
		for _, s := range byLevel[level] {
			label := fmtLabel(s, opts.Detailed)
			attrs := fmtAttrs(s, label)
			fmt.Fprintf(&buf, "    %q [%s];\n", s.ID, strings.Join(attrs, ", "))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, s := range schedules {
		for _, child := range s.Children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", s.ID, child)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(s schedule.Schedule, detailed bool) string {
	if !detailed {
		return s.Name
	}
	parts := []string{
		s.Name,
		s.Start.Format(timeLabelFormat) + " - " + s.End.Format(timeLabelFormat),
		fmt.Sprintf("level %d", s.Level),
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(s schedule.Schedule, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if s.Exclusive {
		attrs = append(attrs, "penwidth=2", "color=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg element with an origin-anchored
// viewBox so the output embeds cleanly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
