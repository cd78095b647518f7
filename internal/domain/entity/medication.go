package entity

type Medication struct {
	ID        int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Quantity  int    `gorm:"not null;default:0" json:"quantity"`
	Threshold int    `gorm:"not null" json:"threshold"`
	Notes     string `gorm:"type:text" json:"notes"`
}

func (Medication) TableName() string {
	return "medications"
}
