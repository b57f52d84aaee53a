package mapping

// Flow list columns.
const (
	ColVersion             = "version"
	ColVersionEnd          = "version_end"
	ColAlgorithmUID        = "algorithm_uid"
	ColSubAlgorithmUID     = "subalgorithm_uid"
	ColFlowName            = "flow_name"
	ColTgtTable            = "tgt_table"
	ColTargetRDVObjectType = "target_rdv_object_type"
	ColSrcTable            = "src_table"
	ColSourceName          = "source_name"
	ColScdType             = "scd_type"
	ColDistributionField   = "distribution_field"
	ColComment             = "comment"
)

// Details columns that are not also flow list columns.
const (
	ColSrcAttribute     = "src_attribute"
	ColSrcAttrDatatype  = "src_attr_datatype"
	ColSrcPK            = "src_pk"
	ColExpression       = "expression"
	ColTgtAttribute     = "tgt_attribute"
	ColTgtAttrDatatype  = "tgt_attr_datatype"
	ColTgtAttrMandatory = "tgt_attr_mandatory"
	ColTgtPK            = "tgt_pk"
	ColConversionType   = "attr:conversion_type"
	ColBkSchema         = "attr:bk_schema"
	ColBkObject         = "attr:bk_object"
	ColNullDefault      = "attr_nulldefault"
)

// DefaultFlowListColumns are required on the flow list when the configuration names none.
var DefaultFlowListColumns = []string{
	ColVersion, ColVersionEnd, ColAlgorithmUID, ColSubAlgorithmUID, ColFlowName, ColTgtTable,
	ColTargetRDVObjectType, ColSrcTable, ColSourceName, ColScdType, ColDistributionField, ColComment,
}

// DefaultDetailsColumns are required on the details sheet when the configuration names none.
var DefaultDetailsColumns = []string{
	ColSrcTable, ColSrcAttribute, ColSrcAttrDatatype, ColSrcPK, ColExpression, ColTgtTable,
	ColTgtAttribute, ColTgtAttrDatatype, ColTgtAttrMandatory, ColTgtPK, ColComment,
	ColConversionType, ColBkSchema, ColBkObject, ColNullDefault, ColVersionEnd,
}
