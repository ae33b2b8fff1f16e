// Package pkg provides the core libraries for Slackline critical path scheduling.
//
// # Overview
//
// Slackline computes critical path method (CPM) schedules for task networks:
// when each task can start and finish, how much slack it has, and which chain
// of tasks determines the project duration. The pkg directory is organized
// into these areas:
//
//  1. [cpm] - The scheduling engine (topological ordering, forward/backward
//     pass, drag propagation)
//  2. [project] - The task/project data model and TOML/JSON file formats
//  3. [practice] - Answer checking and report submission for teaching use
//  4. [render] - Gantt chart and network diagram generation
//  5. [store], [cache] - Project persistence and schedule memoization
//
// # Architecture
//
// The typical data flow through Slackline:
//
//	TOML manifest / JSON file / HTTP request
//	         ↓
//	    [project] package (parse + validate)
//	         ↓
//	    [cpm] package (order, compute, propagate drags)
//	         ↓
//	    [render] / [practice] / JSON output
//
// The engine in [cpm] is pure: it never mutates its inputs and holds no
// state between calls, so schedules for different projects can be computed
// concurrently.
//
// [cpm]: github.com/slacklinehq/slackline/pkg/cpm
// [project]: github.com/slacklinehq/slackline/pkg/project
// [practice]: github.com/slacklinehq/slackline/pkg/practice
// [render]: github.com/slacklinehq/slackline/pkg/render
// [store]: github.com/slacklinehq/slackline/pkg/store
// [cache]: github.com/slacklinehq/slackline/pkg/cache
package pkg
