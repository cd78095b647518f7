package entity

type GeneralizedFinding struct {
	ID      int    `gorm:"primaryKey;autoIncrement" json:"id"`
	VisitID int    `gorm:"not null;index" json:"visit_id"`
	Finding string `gorm:"type:text;not null" json:"finding"`
}

func (GeneralizedFinding) TableName() string {
	return "generalized_findings"
}
