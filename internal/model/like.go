package model

import "time"

// Like 是多态的点赞记录：三个目标列里恰好有一个非空
// 每种目标都有联合唯一索引，(owner, target)的唯一性由MySQL保证，而不是读后写的检查
// 不用软删除：取消点赞必须真正释放唯一索引里的位置，否则无法再次点赞
type Like struct {
	ID        uint64 `gorm:"primarykey"`
	CreatedAt time.Time

	OwnerID   uint64  `gorm:"not null;uniqueIndex:idx_owner_video;uniqueIndex:idx_owner_comment;uniqueIndex:idx_owner_tweet"`
	VideoID   *uint64 `gorm:"uniqueIndex:idx_owner_video"`
	CommentID *uint64 `gorm:"uniqueIndex:idx_owner_comment"`
	TweetID   *uint64 `gorm:"uniqueIndex:idx_owner_tweet"`
}

func (Like) TableName() string {
	return "likes"
}
