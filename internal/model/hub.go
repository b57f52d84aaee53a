package model

import (
	"fmt"
	"strings"
)

// HubSpec holds the values a HubMartField is built from.
type HubSpec struct {
	// Schema and Table locate the hub in the database.
	Schema            string
	Table             string
	RkField           string
	BusinessKeySchema string
	OnFullNull        string
	SrcAttribute      string
	SrcType           string
	Expression        string
	FieldType         string
	IsBK              bool
	MartRetainKey     string
}

// HubMartField links a mart column to a hub table.
type HubMartField struct {
	Schema        string
	HubTable      string
	FullTableName string
	ResourceCd    string
	ShortName     string
	// RkField is the hub column holding the retain key.
	RkField string
	IDField string
	// MartRetainKey is the mart column the retain key is written to.
	MartRetainKey     string
	BusinessKeySchema string
	OnFullNull        string
	SrcAttribute      string
	Expression        string
	SrcType           string
	FieldType         string
	IsBK              bool
	SrcCd             string
	ActualDttmName    string
}

// NewHubMartField builds a hub link. Text-typed values are guarded so that
// empty strings reach the hub as nulls.
func NewHubMartField(spec HubSpec, opts *Options) *HubMartField {
	h := &HubMartField{
		Schema:            spec.Schema,
		HubTable:          spec.Table,
		FullTableName:     spec.Schema + "." + spec.Table,
		ResourceCd:        "ceh." + spec.Schema + "." + spec.Table,
		ShortName:         opts.ShortName.Name(spec.Table),
		RkField:           spec.RkField,
		IDField:           strings.TrimSuffix(spec.RkField, "_rk") + "_id",
		MartRetainKey:     spec.MartRetainKey,
		BusinessKeySchema: spec.BusinessKeySchema,
		OnFullNull:        spec.OnFullNull,
		SrcAttribute:      spec.SrcAttribute,
		Expression:        spec.Expression,
		SrcType:           spec.SrcType,
		FieldType:         spec.FieldType,
		IsBK:              spec.IsBK,
	}

	if strings.EqualFold(h.SrcType, "text") {
		value := h.SrcAttribute
		if h.Expression != "" {
			value = h.Expression
		}

		h.Expression = fmt.Sprintf("case when %s = '' then null else %s end", value, value)
	}

	return h
}

// Table returns the hub table name without schema.
func (h *HubMartField) Table() string {
	return h.HubTable
}

// HubNameOnly is the file name stem of hub descriptors.
func (h *HubMartField) HubNameOnly() string {
	return h.HubTable
}

// BkSchemaName is an alias used by hub resource templates.
func (h *HubMartField) BkSchemaName() string {
	return h.BusinessKeySchema
}
