package entity

type Investigation struct {
	ID       int    `gorm:"primaryKey;autoIncrement" json:"id"`
	VisitID  int    `gorm:"not null;index" json:"visit_id"`
	Type     string `gorm:"type:varchar(100);not null" json:"type"`
	Findings string `gorm:"type:text" json:"findings"`
}

func (Investigation) TableName() string {
	return "investigations"
}
