package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"vidtube/internal/apperror"
	"vidtube/internal/data"
	"vidtube/internal/dto"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/pkg/logger"
	"vidtube/pkg/storage"

	"golang.org/x/sync/singleflight"
)

// ListVideosInput handler传来的原始列表参数，规范化在service层做
type ListVideosInput struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string // asc / desc
	OwnerID  uint64
	ViewerID uint64
}

// PublishVideoInput 发布视频所需的全部字段，媒体文件已由handler暂存到本地
type PublishVideoInput struct {
	OwnerID       uint64
	Title         string
	Description   string
	Duration      float64
	VideoPath     string
	ThumbnailPath string
}

type VideoService interface {
	List(input ListVideosInput) (*dto.VideoListResponse, error)
	Publish(ctx context.Context, input PublishVideoInput) (*model.Video, error)
	// GetByID 读缓存优先；未发布的视频只有所有者能看到；命中后投递观看事件
	GetByID(videoID, viewerID uint64) (*model.Video, error)
	Update(ctx context.Context, ownerID, videoID uint64, title, description, thumbnailPath string) (*model.Video, error)
	// Delete 在一个事务里级联清理评论、点赞和收藏夹条目
	Delete(ownerID, videoID uint64) error
	TogglePublish(ownerID, videoID uint64) (*model.Video, error)
}

type videoService struct {
	sf singleflight.Group

	videoRepo     repository.VideoRepository
	uow           data.UnitOfWork
	uploader      storage.Uploader
	viewPublisher ViewEventPublisher
}

// sortableColumns 排序字段白名单，挡住任意列名注入
var sortableColumns = map[string]bool{
	"created_at": true,
	"title":      true,
	"views":      true,
	"duration":   true,
}

func NewVideoService(videoRepo repository.VideoRepository, uow data.UnitOfWork, uploader storage.Uploader, viewPublisher ViewEventPublisher) VideoService {
	return &videoService{
		videoRepo:     videoRepo,
		uow:           uow,
		uploader:      uploader,
		viewPublisher: viewPublisher,
	}
}

// List 规范化分页和排序参数后组合查询
func (s *videoService) List(input ListVideosInput) (*dto.VideoListResponse, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	sortBy := input.SortBy
	if !sortableColumns[sortBy] {
		sortBy = "created_at"
	}
	// 默认最新优先，只有显式asc才升序
	sortDesc := strings.ToLower(input.SortType) != "asc"

	videos, total, err := s.videoRepo.FindAll(repository.ListVideosParams{
		Query:    strings.TrimSpace(input.Query),
		OwnerID:  input.OwnerID,
		ViewerID: input.ViewerID,
		SortBy:   sortBy,
		SortDesc: sortDesc,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	return &dto.VideoListResponse{
		Videos: dto.ToVideoResponses(videos),
		Total:  total,
		Page:   page,
		Limit:  limit,
	}, nil
}

// Publish 发布视频：1、校验字段 2、上传视频和缩略图 3、入库（默认未发布）
func (s *videoService) Publish(ctx context.Context, input PublishVideoInput) (*model.Video, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperror.New(http.StatusBadRequest, "标题不能为空")
	}
	// 列宽是150个字符而不是150字节，中文标题按字符数算
	if utf8.RuneCountInString(title) > 150 {
		return nil, apperror.New(http.StatusBadRequest, "标题长度不能超过150")
	}
	if input.Duration < 0 {
		return nil, apperror.New(http.StatusBadRequest, "时长不能为负数")
	}

	videoURL, err := s.uploader.SaveLocalFile(ctx, input.VideoPath)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "视频上传失败")
	}
	thumbnailURL, err := s.uploader.SaveLocalFile(ctx, input.ThumbnailPath)
	if err != nil {
		return nil, apperror.New(http.StatusInternalServerError, "缩略图上传失败")
	}

	newVideo := &model.Video{
		OwnerID:      input.OwnerID,
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		Duration:     input.Duration,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
	}
	if err := s.videoRepo.Create(newVideo); err != nil {
		return nil, err
	}
	return s.videoRepo.FindByID(newVideo.ID)
}

// GetByID 根据videoID查找视频：1、查Redis缓存 2、SingleFlight合并回源 3、投递观看事件
func (s *videoService) GetByID(videoID, viewerID uint64) (*model.Video, error) {
	video, err := s.videoRepo.GetVideoCache(videoID)
	if err != nil {
		// 不是缓存未命中，而是Redis本身出错了：记日志后继续走数据库
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("读取视频缓存失败")
	}

	if video == nil {
		// 缓存未命中，同一key的并发回源合并成一次数据库查询
		key := fmt.Sprintf("get_video_%d", videoID)
		result, err, _ := s.sf.Do(key, func() (interface{}, error) {
			dbVideo, dbErr := s.videoRepo.FindByID(videoID)
			if dbErr != nil {
				return nil, dbErr
			}
			_ = s.videoRepo.SetVideoCache(dbVideo)
			return dbVideo, nil
		})
		if err != nil {
			if isNotFoundErr(err) {
				return nil, apperror.New(http.StatusNotFound, "视频不存在")
			}
			return nil, err
		}
		video = result.(*model.Video)
	}

	// 未发布的视频对外等同于不存在，不向非所有者泄露它的存在性
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, apperror.New(http.StatusNotFound, "视频不存在")
	}

	// 播放量走异步管道，失败不影响本次请求
	if s.viewPublisher != nil {
		if err := s.viewPublisher.PublishView(ViewMessage{VideoID: videoID, UserID: viewerID}); err != nil {
			logger.Log.WithError(err).WithField("video_id", videoID).Warn("观看事件投递失败")
		}
	}

	return video, nil
}

func (s *videoService) Update(ctx context.Context, ownerID, videoID uint64, title, description, thumbnailPath string) (*model.Video, error) {
	video, err := s.findOwnedVideo(ownerID, videoID)
	if err != nil {
		return nil, err
	}

	if title = strings.TrimSpace(title); title != "" {
		if utf8.RuneCountInString(title) > 150 {
			return nil, apperror.New(http.StatusBadRequest, "标题长度不能超过150")
		}
		video.Title = title
	}
	if description = strings.TrimSpace(description); description != "" {
		video.Description = description
	}
	if thumbnailPath != "" {
		thumbnailURL, err := s.uploader.SaveLocalFile(ctx, thumbnailPath)
		if err != nil {
			return nil, apperror.New(http.StatusInternalServerError, "缩略图上传失败")
		}
		video.ThumbnailURL = thumbnailURL
	}

	if err := s.videoRepo.Save(video); err != nil {
		return nil, err
	}
	// 缓存里的旧数据必须失效
	_ = s.videoRepo.DelVideoCache(videoID)
	return s.videoRepo.FindByID(videoID)
}

func (s *videoService) Delete(ownerID, videoID uint64) error {
	if _, err := s.findOwnedVideo(ownerID, videoID); err != nil {
		return err
	}

	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if err := repos.CommentRepo.DeleteByVideoID(videoID); err != nil {
			return err
		}
		if err := repos.LikeRepo.DeleteByVideoID(videoID); err != nil {
			return err
		}
		if err := repos.PlaylistRepo.RemoveVideoEverywhere(videoID); err != nil {
			return err
		}
		return repos.VideoRepo.Delete(videoID)
	})
	if err != nil {
		return err
	}

	_ = s.videoRepo.DelVideoCache(videoID)
	return nil
}

func (s *videoService) TogglePublish(ownerID, videoID uint64) (*model.Video, error) {
	video, err := s.findOwnedVideo(ownerID, videoID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.videoRepo.Save(video); err != nil {
		return nil, err
	}
	_ = s.videoRepo.DelVideoCache(videoID)
	return video, nil
}

// findOwnedVideo 加载视频并做所有权检查：404优先于403，不向外人泄露资源归属
func (s *videoService) findOwnedVideo(ownerID, videoID uint64) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "视频不存在")
		}
		return nil, err
	}
	if video.OwnerID != ownerID {
		return nil, apperror.New(http.StatusForbidden, "无权操作他人的视频")
	}
	return video, nil
}
