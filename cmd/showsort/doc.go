// Package main hosts the showsort CLI entrypoint and command graph.
//
// Running showsort with no subcommand processes the inbox and reconciles the
// library. Other commands reconcile the library alone, preview how file names
// parse, report directory health, and scaffold configuration. Configuration
// loading, logger construction, and the run lock are centralized in
// commandContext so subcommands only wire organizer components together.
package main
