package model

type Video struct {
	BaseModel
	OwnerID     uint64 `gorm:"not null;index"`
	Title       string `gorm:"size:150;not null"`
	Description string `gorm:"size:5000"`
	// 视频时长（秒），上传时由客户端给出
	Duration    float64 `gorm:"not null"`
	Views       uint64  `gorm:"default:0"`
	IsPublished bool    `gorm:"default:false"`

	VideoURL     string `gorm:"not null"`
	ThumbnailURL string `gorm:"not null"`

	Owner User `gorm:"foreignKey:OwnerID;references:ID"`
}

func (Video) TableName() string {
	return "videos"
}
