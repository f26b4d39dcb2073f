package ledger

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures win graph rendering.
type DOTOptions struct {
	// Labels names the items. Missing entries fall back to the item index.
	Labels []string
	// Ranking, when set, colours nodes from worst (light) to best (dark).
	Ranking []int
}

var rankPalette = []string{"#f1eef6", "#d0d1e6", "#a6bddb", "#74a9cf", "#2b8cbe", "#045a8d"}

// ToDOT renders the ledger as a Graphviz digraph. Each edge winner→loser
// is labelled with its win count.
func ToDOT(l *Ledger, opts DOTOptions) string {
	shade := make(map[int]string, len(opts.Ranking))
	for pos, item := range opts.Ranking {
		shade[item] = rankPalette[pos*len(rankPalette)/len(opts.Ranking)]
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10, color=\"#555555\"];\n")
	buf.WriteString("\n")

	for i := range l.Size() {
		label := strconv.Itoa(i)
		if i < len(opts.Labels) && opts.Labels[i] != "" {
			label = opts.Labels[i]
		}
		if c, ok := shade[i]; ok {
			fmt.Fprintf(&buf, "  %d [label=%q, fillcolor=%q];\n", i, label, c)
		} else {
			fmt.Fprintf(&buf, "  %d [label=%q];\n", i, label)
		}
	}

	buf.WriteString("\n")
	for _, e := range l.Edges() {
		fmt.Fprintf(&buf, "  %d -> %d [label=\"%d\"];\n", e.Winner, e.Loser, e.Wins)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the drawing scales with its
// container instead of carrying Graphviz's point-based size.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
