// Package gantt renders a computed schedule as an SVG Gantt chart.
//
// Each task occupies one row (in project task order). The solid bar spans
// ES..EF; a thin whisker continues to LF, showing how far the task could
// slip without delaying the project. Critical tasks are drawn in the accent
// color. The chart consumes the schedule as plain data and has no feedback
// into the engine.
package gantt

import (
	"bytes"
	"fmt"

	"github.com/slacklinehq/slackline/pkg/cpm"
	"github.com/slacklinehq/slackline/pkg/project"
)

// Layout constants, in pixels.
const (
	rowHeight   = 32.0
	barHeight   = 18.0
	unitWidth   = 24.0 // horizontal pixels per abstract time unit
	labelGutter = 140.0
	topMargin   = 28.0
	padding     = 16.0
)

// Colors.
const (
	colorBar      = "#4a90d9"
	colorCritical = "#d9534a"
	colorSlack    = "#b8c4ce"
	colorGrid     = "#e3e7ea"
	colorText     = "#30363b"
)

// RenderSVG draws the schedule as a Gantt chart.
// Tasks omitted from the schedule (cycle members, unknown deps) are skipped.
func RenderSVG(p *project.Project, sched *cpm.Schedule) []byte {
	rows := 0
	for _, t := range p.Tasks {
		if _, ok := sched.ES[t.ID]; ok {
			rows++
		}
	}

	width := labelGutter + sched.Duration*unitWidth + 2*padding
	height := topMargin + float64(rows)*rowHeight + padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="sans-serif" font-size="12">`+"\n",
		width, height, width, height)

	renderGrid(&buf, sched.Duration, height)

	y := topMargin
	for _, t := range p.Tasks {
		es, ok := sched.ES[t.ID]
		if !ok {
			continue
		}
		renderRow(&buf, t, sched, es, y)
		y += rowHeight
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderGrid draws one vertical line and tick label per time unit.
func renderGrid(buf *bytes.Buffer, duration, height float64) {
	for u := 0.0; u <= duration; u++ {
		x := labelGutter + u*unitWidth
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
			x, topMargin-8, x, height-padding, colorGrid)
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" fill="%s" text-anchor="middle">%g</text>`+"\n",
			x, topMargin-12, colorText, u)
	}
}

func renderRow(buf *bytes.Buffer, t project.Task, sched *cpm.Schedule, es, y float64) {
	barY := y + (rowHeight-barHeight)/2

	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" fill="%s">%s</text>`+"\n",
		padding, barY+barHeight-5, colorText, escapeText(t.Name))

	// Slack whisker from EF to LF, drawn under the bar.
	ef := sched.EF[t.ID]
	lf := sched.LF[t.ID]
	if lf > ef {
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="4" fill="%s"/>`+"\n",
			labelGutter+ef*unitWidth, barY+barHeight/2-2, (lf-ef)*unitWidth, colorSlack)
	}

	fill := colorBar
	if sched.IsCritical(t.ID) {
		fill = colorCritical
	}
	fmt.Fprintf(buf, `  <rect class="bar" id="bar-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="3" fill="%s"/>`+"\n",
		t.ID, labelGutter+es*unitWidth, barY, (ef-es)*unitWidth, barHeight, fill)
}

// escapeText escapes the XML special characters that can appear in names.
func escapeText(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
