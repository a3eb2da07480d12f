package service

import (
	"net/http"
	"strings"

	"vidtube/internal/apperror"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

type PlaylistService interface {
	Create(ownerID uint64, name, description string) (*model.Playlist, error)
	GetByUser(userID uint64) ([]model.Playlist, error)
	GetByID(playlistID uint64) (*model.Playlist, error)
	Update(ownerID, playlistID uint64, name, description string) (*model.Playlist, error)
	Delete(ownerID, playlistID uint64) error
	AddVideo(ownerID, playlistID, videoID uint64) (*model.Playlist, error)
	RemoveVideo(ownerID, playlistID, videoID uint64) (*model.Playlist, error)
}

type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	userRepo     repository.UserRepository
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository, userRepo repository.UserRepository) PlaylistService {
	return &playlistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		userRepo:     userRepo,
	}
}

func (s *playlistService) Create(ownerID uint64, name, description string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.New(http.StatusBadRequest, "收藏夹名称不能为空")
	}

	newPlaylist := &model.Playlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: strings.TrimSpace(description),
	}
	if err := s.playlistRepo.Create(newPlaylist); err != nil {
		return nil, err
	}
	return newPlaylist, nil
}

func (s *playlistService) GetByUser(userID uint64) ([]model.Playlist, error) {
	if _, err := s.userRepo.FindPublicByID(userID); err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "用户不存在")
		}
		return nil, err
	}
	return s.playlistRepo.FindByOwner(userID)
}

func (s *playlistService) GetByID(playlistID uint64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(playlistID)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "收藏夹不存在")
		}
		return nil, err
	}
	return playlist, nil
}

func (s *playlistService) Update(ownerID, playlistID uint64, name, description string) (*model.Playlist, error) {
	playlist, err := s.findOwnedPlaylist(ownerID, playlistID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		playlist.Name = name
	}
	if description = strings.TrimSpace(description); description != "" {
		playlist.Description = description
	}

	if err := s.playlistRepo.Save(playlist); err != nil {
		return nil, err
	}
	return s.playlistRepo.FindByID(playlistID)
}

func (s *playlistService) Delete(ownerID, playlistID uint64) error {
	if _, err := s.findOwnedPlaylist(ownerID, playlistID); err != nil {
		return err
	}
	return s.playlistRepo.Delete(playlistID)
}

// AddVideo 追加到末尾：Position取当前条目数+1；重复添加撞唯一索引时报400
func (s *playlistService) AddVideo(ownerID, playlistID, videoID uint64) (*model.Playlist, error) {
	if _, err := s.findOwnedPlaylist(ownerID, playlistID); err != nil {
		return nil, err
	}

	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "视频不存在")
		}
		return nil, err
	}

	count, err := s.playlistRepo.CountVideos(playlistID)
	if err != nil {
		return nil, err
	}

	entry := &model.PlaylistVideo{
		PlaylistID: playlistID,
		VideoID:    videoID,
		Position:   int(count) + 1,
	}
	if err := s.playlistRepo.AddVideo(entry); err != nil {
		if isDuplicateKeyErr(err) {
			return nil, apperror.New(http.StatusBadRequest, "视频已在收藏夹中")
		}
		return nil, err
	}

	return s.playlistRepo.FindByID(playlistID)
}

func (s *playlistService) RemoveVideo(ownerID, playlistID, videoID uint64) (*model.Playlist, error) {
	if _, err := s.findOwnedPlaylist(ownerID, playlistID); err != nil {
		return nil, err
	}

	// 不在收藏夹里也不报错，删除是幂等的
	if _, err := s.playlistRepo.RemoveVideo(playlistID, videoID); err != nil {
		return nil, err
	}

	return s.playlistRepo.FindByID(playlistID)
}

func (s *playlistService) findOwnedPlaylist(ownerID, playlistID uint64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(playlistID)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "收藏夹不存在")
		}
		return nil, err
	}
	if playlist.OwnerID != ownerID {
		return nil, apperror.New(http.StatusForbidden, "无权操作他人的收藏夹")
	}
	return playlist, nil
}
