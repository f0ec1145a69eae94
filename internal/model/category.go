package model

// SentinelCategory is the permanent fallback category. It cannot be deleted
// or renamed and receives the tasks of deleted categories.
const SentinelCategory = "Muu"

// AllCategories is the list filter that disables category filtering.
const AllCategories = "Kaikki"

// Category groups tasks by area (work, school, etc.). Color and IconName are
// palette keys passed through untouched.
type Category struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	Color    string `json:"color"`
	IconName string `json:"icon_name"`
	MasterID *uint  `gorm:"index" json:"master_id,omitempty"`

	Master *MasterCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

// MasterCategory is an optional one-level parent over categories.
type MasterCategory struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;not null" json:"name"`
	Color    string `json:"color"`
	IconName string `json:"icon_name"`
}
