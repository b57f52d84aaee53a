// Package model is the in-memory object graph handed to the renderer:
// a FlowContext owning its Sources, Targets, Marts, TargetTables, Hubs and
// LocalMetrics, plus the derived attributes templates read (short names,
// primary-key and distribution expressions, hash and multi field lists, tags).
//
// Entities never read global configuration. The lists they depend on are
// injected through a read-only Options value shared by one run.
package model
