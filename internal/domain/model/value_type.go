//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// ValueType describes a measurable health metric. Rows are seeded by
// migration and rarely change; NameZh carries the localized display name
// so clients do not need a separate string table.
type ValueType struct {
	ID                int     `json:"id"              db:"id"`
	Name              string  `json:"name"            db:"name"`
	Unit              string  `json:"unit"            db:"unit"`
	NameZh            string  `json:"name_zh"         db:"name_zh"`
	Unit2             *string `json:"unit2,omitempty" db:"unit2"`
	RequiresTwoValues bool    `json:"requires_two_values" db:"requires_two_values"`
	IsActive          bool    `json:"is_active"       db:"is_active"`
}

// Well-known seeded value type IDs.
const (
	ValueTypeBloodSugar    = 1
	ValueTypeBloodPressure = 2
	ValueTypeBodyFat       = 3
	ValueTypeWeight        = 4
)
