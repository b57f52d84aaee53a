// Package build runs the generation loop: for every retained flow it walks the
// flow's target tables, validates them, assembles a model.FlowContext and hands
// finished flows to a FlowSink.
//
// Failures are graded. Structural problems stop the run before any flow is
// processed. A table-level problem skips the table and marks its flow as
// failed, so nothing is written for that flow while sibling flows continue.
// Warnings never stop processing. Everything is recorded in the
// diagnostic.Outcome returned to the caller.
package build
