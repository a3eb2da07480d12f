package model

type Comment struct {
	BaseModel
	VideoID uint64 `gorm:"not null;index"`
	OwnerID uint64 `gorm:"not null;index"`
	Content string `gorm:"type:text;not null"`

	Owner User `gorm:"foreignKey:OwnerID"`
}

func (Comment) TableName() string {
	return "comments"
}
