// Package gen renders flows into the files consumed by the ETL platform.
//
// Rendering uses text/template. The default templates are embedded in the
// binary; a template directory named in the settings overrides them by file
// name and may add per-schema uni resource templates
// (resource.uni.table.<SCHEMA>.json).
//
// Artifacts of one flow, relative to <out>/<flow_name>:
//   - workflow, control flow and dag driver
//   - a uni resource and a db_table descriptor per source
//   - DDL, table descriptor, resource and accessor script per MART table
//   - DDL, table descriptor and resources per hub
package gen
