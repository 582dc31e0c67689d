package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Protocol represents the protocols table - the deduplicated, parent-aggregated catalog
type Protocol struct {
	// Slug is the canonical protocol slug
	Slug string `gorm:"column:slug;primaryKey"`
	// Name is the protocol name
	Name string `gorm:"column:name;not null"`
	// DisplayName is the name shown to users
	DisplayName string `gorm:"column:display_name;not null"`
	// Logo is the logo URL
	Logo string `gorm:"column:logo"`
	// Category is the protocol category
	Category string `gorm:"column:category"`
	// Chains lists the chains the protocol is deployed on
	Chains datatypes.JSONSlice[string] `gorm:"column:chains"`
	// IsParent indicates the record was merged from child entries
	IsParent bool `gorm:"column:is_parent;not null;default:false"`
	// HasBreakdown indicates ingested metrics carried per sub-entity values
	HasBreakdown bool `gorm:"column:has_breakdown;not null;default:false"`
	// CreatedAt is when the protocol was first derived
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	// UpdatedAt is when the protocol was last derived
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for the Protocol model
func (Protocol) TableName() string {
	return "protocols"
}
