package entity

import "gorm.io/datatypes"

// Well-known setting keys
const (
	SettingKeyDropdownOptions     = "dropdown_options"
	SettingKeyToothFindingOptions = "tooth_finding_options"
	SettingKeyInvestigationTypes  = "investigation_types"
	SettingKeyClinicInfo          = "clinic_info"
	SettingKeyPatientIDFormat     = "patient_id_format"
)

// Setting is a key/value row used for dropdown options and clinic metadata
type Setting struct {
	ID           int            `gorm:"primaryKey;autoIncrement" json:"id"`
	SettingKey   string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"setting_key"`
	SettingValue datatypes.JSON `gorm:"not null" json:"setting_value"`
	Category     string         `gorm:"type:varchar(100);not null;index" json:"category"`
}

func (Setting) TableName() string {
	return "settings"
}

// PatientIDFormat is the value stored under SettingKeyPatientIDFormat
type PatientIDFormat struct {
	Prefix       string `json:"prefix"`
	YearInFormat bool   `json:"yearInFormat"`
	DigitCount   int    `json:"digitCount"`
	Separator    string `json:"separator"`
}

// DefaultPatientIDFormat is used when the setting is missing or unreadable.
var DefaultPatientIDFormat = PatientIDFormat{
	Prefix:       "PT",
	YearInFormat: true,
	DigitCount:   4,
	Separator:    "-",
}
