package model

type User struct {
	BaseModel
	Username string `gorm:"uniqueIndex;size:64;not null"` // 统一存小写
	Email    string `gorm:"uniqueIndex;size:128;not null"`
	FullName string `gorm:"size:128;not null"`
	// bcrypt后的哈希，序列化时永远排除
	Password  string `gorm:"not null" json:"-"`
	AvatarURL string `gorm:"not null"`
	CoverURL  string

	// 单槽位refresh token：新登录会顶掉旧会话
	RefreshToken string `gorm:"type:text" json:"-"`

	// 最近观看的视频，由消费者进程异步更新
	WatchHistoryID *uint64
}

func (User) TableName() string {
	return "users"
}
