// Package config loads the generator settings: the YAML settings file,
// flag and environment overrides, the named regular expression dictionary,
// datatype tables and the field lists consumed by the model builder.
//
// # File overview
//
//	author: Jane Doe
//	out_path: AFlows
//	wf_templates_list: ["^wf_.+"]
//	regexp:
//	  src_table_name_regexp: '^[a-z0-9_]+\.[a-z0-9_]+$'
//	  src_cd_regexp: "^='?([A-Za-z0-9_]+)'?$"
//	tags:
//	  - rdv
//	  - team: ledger
//	field_type_list:
//	  tgt_attr_predefined_datatype:
//	    src_cd: [text, not null]
//	excel_data_definition:
//	  columns:
//	    Перечень загрузок Src-RDV: [flow_name, tgt_table]
//
// Settings are read-only after loading; they are shared by every flow of a run.
package config
