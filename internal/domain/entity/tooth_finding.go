package entity

type ToothFinding struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	VisitID     int    `gorm:"not null;index" json:"visit_id"`
	ToothNumber string `gorm:"type:varchar(5);not null" json:"tooth_number"`
	Finding     string `gorm:"type:text;not null" json:"finding"`
}

func (ToothFinding) TableName() string {
	return "tooth_findings"
}
