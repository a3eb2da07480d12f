package repository

import (
	"vidtube/internal/model"

	"gorm.io/gorm"
)

// LikeTarget 点赞目标的种类，对应likes表的三个目标列之一
type LikeTarget string

const (
	TargetVideo   LikeTarget = "video_id"
	TargetComment LikeTarget = "comment_id"
	TargetTweet   LikeTarget = "tweet_id"
)

type LikeRepository interface {
	Create(like *model.Like) error
	// DeleteByTarget 删除(owner, target)的点赞记录，返回受影响的行数
	// 行数为0意味着原本就没点过赞，toggle逻辑据此决定走插入
	DeleteByTarget(ownerID uint64, target LikeTarget, targetID uint64) (int64, error)
	// FindVideosLikedBy 当前用户点赞过的全部视频
	FindVideosLikedBy(ownerID uint64) ([]model.Video, error)
	// CountForChannelVideos 某频道全部视频收到的点赞总数
	CountForChannelVideos(channelID uint64) (int64, error)
	DeleteByVideoID(videoID uint64) error

	WithTx(tx *gorm.DB) LikeRepository
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepository{db: tx}
}

func (r *likeRepository) Create(like *model.Like) error {
	return r.db.Create(like).Error
}

func (r *likeRepository) DeleteByTarget(ownerID uint64, target LikeTarget, targetID uint64) (int64, error) {
	// 目标列名来自本包内的常量，不存在注入风险
	result := r.db.Exec(
		"DELETE FROM likes WHERE owner_id = ? AND "+string(target)+" = ?",
		ownerID, targetID,
	)
	return result.RowsAffected, result.Error
}

func (r *likeRepository) FindVideosLikedBy(ownerID uint64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Model(&model.Video{}).
		Joins("JOIN likes ON likes.video_id = videos.id").
		Where("likes.owner_id = ?", ownerID).
		Preload("Owner").
		Order("likes.created_at desc").
		Find(&videos).Error
	return videos, err
}

func (r *likeRepository) CountForChannelVideos(channelID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("videos.owner_id = ?", channelID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) DeleteByVideoID(videoID uint64) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.Like{}).Error
}
