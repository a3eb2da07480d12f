package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"vidtube/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ListVideosParams 列表查询的筛选、排序和分页参数，由service层规范化后传入
type ListVideosParams struct {
	Query    string // 标题子串
	OwnerID  uint64 // 0表示不过滤
	ViewerID uint64 // 未发布视频只对所有者可见
	SortBy   string // 白名单内的列名
	SortDesc bool
	Offset   int
	Limit    int
}

type VideoRepository interface {
	Create(video *model.Video) error
	FindByID(videoID uint64) (*model.Video, error)
	FindAll(params ListVideosParams) ([]model.Video, int64, error)
	FindByOwner(ownerID uint64) ([]model.Video, error)
	Save(video *model.Video) error
	Delete(videoID uint64) error
	IncrementViews(videoID uint64) error

	CountByOwner(ownerID uint64) (int64, error)
	SumViewsByOwner(ownerID uint64) (int64, error)

	GetVideoCache(videoID uint64) (*model.Video, error)
	SetVideoCache(video *model.Video) error
	DelVideoCache(videoID uint64) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{
		db:  db,
		rdb: rdb,
	}
}

// WithTx 返回一个绑定到事务的副本，事务中不走Redis
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{
		db: tx,
	}
}

func (r *videoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

func (r *videoRepository) FindByID(videoID uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Owner").First(&video, videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// FindAll 组合筛选、排序和分页，并预加载作者的公开信息
func (r *videoRepository) FindAll(params ListVideosParams) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{})

	if params.Query != "" {
		query = query.Where("title LIKE ?", "%"+params.Query+"%")
	}
	if params.OwnerID != 0 {
		query = query.Where("owner_id = ?", params.OwnerID)
	}
	// 未发布的视频只有所有者自己能在列表里看到
	if params.ViewerID != 0 {
		query = query.Where("is_published = ? OR owner_id = ?", true, params.ViewerID)
	} else {
		query = query.Where("is_published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "asc"
	if params.SortDesc {
		direction = "desc"
	}

	var videos []model.Video
	err := query.
		Preload("Owner").
		Order(fmt.Sprintf("%s %s", params.SortBy, direction)).
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *videoRepository) FindByOwner(ownerID uint64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) Save(video *model.Video) error {
	return r.db.Save(video).Error
}

func (r *videoRepository) Delete(videoID uint64) error {
	return r.db.Delete(&model.Video{}, videoID).Error
}

func (r *videoRepository) IncrementViews(videoID uint64) error {
	// UPDATE `videos` SET `views` = `views` + 1 WHERE id = ?，数据库侧原子执行
	return r.db.Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *videoRepository) CountByOwner(ownerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *videoRepository) SumViewsByOwner(ownerID uint64) (int64, error) {
	var total int64
	// COALESCE兜底：没有视频时SUM返回NULL
	err := r.db.Model(&model.Video{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	return total, err
}

func (r *videoRepository) keyVideoInfo(videoID uint64) string {
	return fmt.Sprintf("video:info:%d", videoID)
}

// GetVideoCache 从Redis读取单个视频，缓存未命中返回(nil, nil)
func (r *videoRepository) GetVideoCache(videoID uint64) (*model.Video, error) {
	if r.rdb == nil {
		return nil, nil
	}
	key := r.keyVideoInfo(videoID)
	videoJSON, err := r.rdb.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return nil, nil // 缓存不存在，Redis本身正常
	} else if err != nil {
		return nil, err
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// SetVideoCache 把视频写入Redis，过期时间加随机抖动防止缓存雪崩
func (r *videoRepository) SetVideoCache(video *model.Video) error {
	if r.rdb == nil {
		return nil
	}
	key := r.keyVideoInfo(video.ID)
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(context.Background(), key, videoJSON, expiration).Err()
}

func (r *videoRepository) DelVideoCache(videoID uint64) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(context.Background(), r.keyVideoInfo(videoID)).Err()
}
