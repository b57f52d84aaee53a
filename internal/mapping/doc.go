// Package mapping loads the two sheets of the mapping workbook and turns them
// into typed rows the builder can query.
//
// # Sheets
//
// The flow list has one row per target table:
//
//	flow_name | algorithm_uid | subalgorithm_uid | tgt_table | src_table | source_name | ...
//
// The details sheet has one row per target attribute:
//
//	tgt_table | tgt_attribute | tgt_attr_datatype | src_table | src_attribute | expression | tgt_pk | ...
//
// # Structural validation
//
// New runs every structural check before it returns: duplicated target
// tables, duplicated (algorithm_uid, tgt_table) pairs, hub null-default
// values, rows with both a source attribute and an expression, and (when the
// configuration is strict) unknown primary-key tokens. All problems are
// returned together in a *StructureError so the whole defect list is visible
// in one pass.
//
// Problems that do not stop the run are kept as warnings and exposed through
// Repository.Diagnostics.
package mapping
