package schema

import (
	"time"

	"gorm.io/datatypes"
)

// RawProtocol represents the raw_protocols table - one row per upstream catalog entry
type RawProtocol struct {
	// UpstreamID is the stable upstream identifier of the entry
	UpstreamID string `gorm:"column:upstream_id;primaryKey"`
	// Slug is the upstream slug of the entry
	Slug string `gorm:"column:slug;not null;index"`
	// Name is the upstream name of the entry
	Name string `gorm:"column:name;not null"`
	// DisplayName is the upstream display name of the entry
	DisplayName string `gorm:"column:display_name"`
	// Category is the upstream category (Dexs, Lending, ...)
	Category string `gorm:"column:category"`
	// Chains lists the chains the entry is deployed on
	Chains datatypes.JSONSlice[string] `gorm:"column:chains"`
	// Logo is the logo URL
	Logo string `gorm:"column:logo"`
	// Module is the upstream adapter module id
	Module string `gorm:"column:module"`
	// ParentProtocol is the optional "type#slug" parent reference
	ParentProtocol *string `gorm:"column:parent_protocol"`
	// LinkedProtocols lists the names of the protocols linked to the parent
	LinkedProtocols datatypes.JSONSlice[string] `gorm:"column:linked_protocols"`
	// HasBreakdown indicates the entry publishes per sub-entity data
	HasBreakdown bool `gorm:"column:has_breakdown;not null;default:false"`
	// CreatedAt is when the entry was first seen
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	// UpdatedAt is when the entry was last synced
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for the RawProtocol model
func (RawProtocol) TableName() string {
	return "raw_protocols"
}
