package mapping

import (
	"errors"
	"fmt"

	"rdv-generator/internal/diagnostic"
)

// ErrStructure is wrapped by every StructureError.
var ErrStructure = errors.New("mapping structure error")

// ErrSourceCode is returned when a table's src_cd cannot be resolved.
var ErrSourceCode = errors.New("source code not resolved")

// Diagnostic codes recorded by the repository.
const (
	CodeDuplicateTargetTable = "duplicate_target_table"
	CodeDuplicateAlgorithm   = "duplicate_algorithm_target"
	CodeHubNullDefault       = "invalid_hub_nulldefault"
	CodeExclusiveSource      = "src_attribute_and_expression"
	CodeUnknownPKToken       = "unknown_tgt_pk_token"
	CodeInvalidSrcPK         = "invalid_src_pk"
	CodeMissingDatatypeAlias = "missing_datatype_aliases"
)

// StructureError carries every structural problem found while loading the workbook.
type StructureError struct {
	Diagnostics diagnostic.Diagnostics
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: %d problem(s): %v", ErrStructure, len(e.Diagnostics.Errors), e.Diagnostics.Error())
}

func (e *StructureError) Unwrap() error {
	return ErrStructure
}
