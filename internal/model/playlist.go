package model

import "time"

type Playlist struct {
	BaseModel
	OwnerID     uint64 `gorm:"not null;index"`
	Name        string `gorm:"size:128;not null"`
	Description string `gorm:"size:1000"`

	Owner User `gorm:"foreignKey:OwnerID"`
	// 按Position排序的收藏条目
	Videos []PlaylistVideo `gorm:"foreignKey:PlaylistID"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistVideo 收藏夹里的一条视频，唯一索引保证同一视频在一个收藏夹里只出现一次
// 移除条目是硬删除，否则唯一索引会挡住重新添加
type PlaylistVideo struct {
	ID        uint64 `gorm:"primarykey"`
	CreatedAt time.Time

	PlaylistID uint64 `gorm:"not null;uniqueIndex:idx_playlist_video"`
	VideoID    uint64 `gorm:"not null;uniqueIndex:idx_playlist_video"`
	Position   int    `gorm:"not null"`

	Video Video `gorm:"foreignKey:VideoID"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
