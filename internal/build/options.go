package build

import (
	"fmt"

	"rdv-generator/internal/config"
	"rdv-generator/internal/model"
)

// NewOptions converts settings into the entity construction context.
func NewOptions(s *config.Settings) (*model.Options, error) {
	uni, err := model.ParseUniResource(s.UniResourceTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing uni_resource_template: %w", err)
	}

	presets := make([]model.PresetField, 0, len(s.FieldLists.AddFieldMap))

	for _, e := range s.FieldLists.AddFieldMap {
		vt, err := model.ParseValueType(e.Type)
		if err != nil {
			return nil, fmt.Errorf("add_field_map_ctx_list %q: %w", e.Name, err)
		}

		presets = append(presets, model.PresetField{
			Name:      e.Name,
			ValueType: vt,
			Value:     e.Value,
			FieldType: e.FieldType,
		})
	}

	return &model.Options{
		IgnorePrimaryKey:  s.FieldLists.IgnorePrimaryKey,
		IgnoreHashFields:  s.FieldLists.IgnoreHashSet,
		IgnoreMultiFields: s.FieldLists.IgnoreMultiFields,
		IgnoreFieldMap:    s.FieldLists.IgnoreFieldMap,
		PresetFields:      presets,
		CehAliases:        s.FieldTypes.CehAliases,
		UniResource:       uni,
		ShortName: model.ShortNamer{
			Length:       s.ShortName.Length,
			RandomLength: s.ShortName.RandomLength,
			CharSet:      model.ShortNameCharset,
		},
	}, nil
}
