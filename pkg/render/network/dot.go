// Package network renders the precedence network as a node-link diagram.
//
// ToDOT emits Graphviz DOT source; RenderSVG and RenderPNG rasterize it
// in-process using [github.com/goccy/go-graphviz]. Critical tasks and the
// critical edges between them are drawn in the accent color so the critical
// path is visible as a continuous chain.
package network

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/goccy/go-graphviz"

	"github.com/slacklinehq/slackline/pkg/cpm"
	"github.com/slacklinehq/slackline/pkg/project"
)

// ToDOT converts a project and its schedule to Graphviz DOT format.
// Node labels carry the task name, duration and computed ES/LS window.
// Tasks omitted from the schedule are rendered dashed with no timing label.
func ToDOT(p *project.Project, sched *cpm.Schedule) string {
	var buf bytes.Buffer
	buf.WriteString("digraph cpm {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("\n")

	for _, t := range p.Tasks {
		fmt.Fprintf(&buf, "  %q [%s];\n", t.ID, nodeAttrs(t, sched))
	}

	buf.WriteString("\n")
	for _, t := range p.Tasks {
		for _, dep := range t.Deps {
			if criticalEdge(sched, dep, t.ID) {
				fmt.Fprintf(&buf, "  %q -> %q [color=\"#d9534a\", penwidth=2];\n", dep, t.ID)
			} else {
				fmt.Fprintf(&buf, "  %q -> %q;\n", dep, t.ID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(t project.Task, sched *cpm.Schedule) string {
	es, ok := sched.ES[t.ID]
	if !ok {
		label := fmt.Sprintf("%s\nd=%d", t.Name, t.Duration)
		return fmt.Sprintf("label=%q, style=\"rounded,dashed\"", label)
	}

	label := fmt.Sprintf("%s\nd=%d  ES=%g  LS=%g", t.Name, t.Duration, es, sched.LS[t.ID])
	if sched.IsCritical(t.ID) {
		return fmt.Sprintf("label=%q, fillcolor=\"#f6d1ce\", color=\"#d9534a\"", label)
	}
	return fmt.Sprintf("label=%q", label)
}

// criticalEdge reports whether the edge from → to lies on the critical path:
// both endpoints critical and no gap between them.
func criticalEdge(sched *cpm.Schedule, from, to string) bool {
	if !sched.IsCritical(from) || !sched.IsCritical(to) {
		return false
	}
	return math.Abs(sched.EF[from]-sched.ES[to]) < cpm.Tolerance
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
