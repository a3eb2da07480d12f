package service

import (
	"net/http"
	"strings"

	"vidtube/internal/apperror"
	"vidtube/internal/dto"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

type CommentService interface {
	// ListByVideo 分页获取某视频的评论，按时间倒序
	ListByVideo(videoID uint64, page, limit int) (*dto.CommentListResponse, error)
	Add(ownerID, videoID uint64, content string) (*model.Comment, error)
	Update(ownerID, commentID uint64, content string) (*model.Comment, error)
	Delete(ownerID, commentID uint64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
	}
}

func (s *commentService) ListByVideo(videoID uint64, page, limit int) (*dto.CommentListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	total, err := s.commentRepo.CountByVideoID(videoID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByVideoID(videoID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	return &dto.CommentListResponse{
		Comments: dto.ToCommentResponses(comments),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// Add 评论视频：1、目标视频必须存在 2、内容去空白后非空 3、入库后带作者信息查回
func (s *commentService) Add(ownerID, videoID uint64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.New(http.StatusBadRequest, "评论内容不能为空")
	}

	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "视频不存在")
		}
		return nil, err
	}

	newComment := &model.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.commentRepo.Create(newComment); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByID(newComment.ID)
}

func (s *commentService) Update(ownerID, commentID uint64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.New(http.StatusBadRequest, "评论内容不能为空")
	}

	comment, err := s.findOwnedComment(ownerID, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Save(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ownerID, commentID uint64) error {
	if _, err := s.findOwnedComment(ownerID, commentID); err != nil {
		return err
	}
	return s.commentRepo.Delete(commentID)
}

func (s *commentService) findOwnedComment(ownerID, commentID uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "评论不存在")
		}
		return nil, err
	}
	if comment.OwnerID != ownerID {
		return nil, apperror.New(http.StatusForbidden, "无权操作他人的评论")
	}
	return comment, nil
}
