// Package diagnostic provides structured warnings and errors collected while
// validating a mapping workbook and assembling flow models.
//
// Key capabilities:
//   - Errors, warnings and infos located by flow, table and field
//   - "Did you mean" suggestions attached to a diagnostic
//   - A per-invocation run outcome that replaces process-wide error flags
package diagnostic
