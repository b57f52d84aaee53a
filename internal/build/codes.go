package build

// Diagnostic codes recorded by the builder.
const (
	CodeNoFlows              = "no_flows"
	CodeNoCompatibility      = "no_corresp_datatype"
	CodeUnsupportedObject    = "unsupported_object_type"
	CodeTableNotInDetails    = "table_not_in_details"
	CodeSrcTableName         = "invalid_src_table_name"
	CodeTgtTableName         = "invalid_tgt_table_name"
	CodeUniResource          = "uni_resource_not_rendered"
	CodeSourceCode           = "src_cd_not_resolved"
	CodeSourceSystem         = "missing_source_name"
	CodeAlgorithmUID         = "missing_algorithm_uid"
	CodeSubAlgorithmUID      = "invalid_subalgorithm_uid"
	CodeDuplicateSrcAttr     = "duplicate_src_attribute"
	CodeSrcDatatype          = "src_datatype_not_allowed"
	CodeTgtDatatype          = "tgt_datatype_not_allowed"
	CodeUnknownSrcDatatype   = "src_datatype_not_in_corresp"
	CodeIncompatibleDatatype = "incompatible_datatype"
	CodeTgtAttrName          = "invalid_tgt_attr_name"
	CodeNoValue              = "no_src_attribute_or_expression"
	CodeHubFieldMap          = "hub_field_not_in_field_map"
	CodeDuplicateMartField   = "duplicate_mart_field"
	CodePredefinedMissing    = "predefined_attr_missing"
	CodePredefinedDuplicate  = "predefined_attr_duplicate"
	CodePredefinedMismatch   = "predefined_attr_mismatch"
	CodeBkSchema             = "invalid_bk_schema"
	CodeBkObject             = "invalid_bk_object"
	CodeHashFieldLimit       = "hash_field_limit"
	CodeTags                 = "tags_not_formed"
	CodeFlowFailed           = "flow_not_generated"
)
