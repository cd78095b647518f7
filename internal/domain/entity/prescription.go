package entity

const (
	FoodTimingBefore = "before"
	FoodTimingAfter  = "after"

	NoDose = "-"
)

// Prescription is one medication line on a visit. Dose columns hold
// counts like "1" or "-" for none.
type Prescription struct {
	ID              int    `gorm:"primaryKey;autoIncrement" json:"id"`
	VisitID         int    `gorm:"not null;index" json:"visit_id"`
	MedicationID    int    `gorm:"not null;index" json:"medication_id"`
	SlNo            int    `gorm:"not null" json:"sl_no"`
	BeforeAfterFood string `gorm:"type:varchar(10);not null;default:'after'" json:"before_after_food"`
	Morning         string `gorm:"type:varchar(10);not null;default:'-'" json:"morning"`
	Afternoon       string `gorm:"type:varchar(10);not null;default:'-'" json:"afternoon"`
	Evening         string `gorm:"type:varchar(10);not null;default:'-'" json:"evening"`
	Night           string `gorm:"type:varchar(10);not null;default:'-'" json:"night"`
	Duration        string `gorm:"type:varchar(50)" json:"duration"`
	Notes           string `gorm:"type:text" json:"notes"`

	Medication *Medication `gorm:"foreignKey:MedicationID;constraint:OnDelete:CASCADE" json:"medication,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
