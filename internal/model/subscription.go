package model

import "time"

// Subscription 订阅关系，subscriber和channel都是用户
// 联合唯一索引保证一个用户对一个频道至多订阅一次；取消订阅是硬删除，理由同Like
type Subscription struct {
	ID        uint64 `gorm:"primarykey"`
	CreatedAt time.Time

	SubscriberID uint64 `gorm:"not null;uniqueIndex:idx_subscriber_channel"`
	ChannelID    uint64 `gorm:"not null;uniqueIndex:idx_subscriber_channel;index"`

	Subscriber User `gorm:"foreignKey:SubscriberID"`
	Channel    User `gorm:"foreignKey:ChannelID"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
