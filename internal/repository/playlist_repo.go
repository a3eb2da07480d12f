package repository

import (
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type PlaylistRepository interface {
	Create(playlist *model.Playlist) error
	// FindByID 预加载按Position排序的条目及其视频
	FindByID(playlistID uint64) (*model.Playlist, error)
	FindByOwner(ownerID uint64) ([]model.Playlist, error)
	Save(playlist *model.Playlist) error
	Delete(playlistID uint64) error

	AddVideo(entry *model.PlaylistVideo) error
	// RemoveVideo 返回受影响的行数，0表示视频不在收藏夹里
	RemoveVideo(playlistID, videoID uint64) (int64, error)
	CountVideos(playlistID uint64) (int64, error)
	RemoveVideoEverywhere(videoID uint64) error

	WithTx(tx *gorm.DB) PlaylistRepository
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) WithTx(tx *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: tx}
}

func (r *playlistRepository) Create(playlist *model.Playlist) error {
	return r.db.Create(playlist).Error
}

func (r *playlistRepository) FindByID(playlistID uint64) (*model.Playlist, error) {
	var result model.Playlist
	err := r.db.
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("playlist_videos.position asc")
		}).
		Preload("Videos.Video").
		Preload("Videos.Video.Owner").
		First(&result, playlistID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *playlistRepository) FindByOwner(ownerID uint64) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("playlist_videos.position asc")
		}).
		Preload("Videos.Video").
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&playlists).Error
	return playlists, err
}

func (r *playlistRepository) Save(playlist *model.Playlist) error {
	return r.db.Save(playlist).Error
}

func (r *playlistRepository) Delete(playlistID uint64) error {
	// 先清掉条目再删收藏夹本身
	if err := r.db.Where("playlist_id = ?", playlistID).Delete(&model.PlaylistVideo{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.Playlist{}, playlistID).Error
}

func (r *playlistRepository) AddVideo(entry *model.PlaylistVideo) error {
	return r.db.Create(entry).Error
}

func (r *playlistRepository) RemoveVideo(playlistID, videoID uint64) (int64, error) {
	result := r.db.Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{})
	return result.RowsAffected, result.Error
}

func (r *playlistRepository) CountVideos(playlistID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.PlaylistVideo{}).Where("playlist_id = ?", playlistID).Count(&count).Error
	return count, err
}

func (r *playlistRepository) RemoveVideoEverywhere(videoID uint64) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.PlaylistVideo{}).Error
}
