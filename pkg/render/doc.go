// Package render provides schedule visualization.
//
// # Overview
//
// This package turns computed schedules into visual outputs. It provides:
//
//   - Gantt charts (in [gantt] subpackage): one bar per task at ES..EF with
//     a whisker out to LF showing available slack, critical tasks colored
//   - Node-link network diagrams (in [network] subpackage): Graphviz DOT
//     generation plus in-process SVG/PNG rasterization, with the critical
//     path drawn as a continuous chain
//
// Both renderers consume a [cpm.Schedule] as read-only data; nothing here
// feeds back into the engine.
//
// [gantt]: github.com/slacklinehq/slackline/pkg/render/gantt
// [network]: github.com/slacklinehq/slackline/pkg/render/network
package render
