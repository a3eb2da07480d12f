package service

import (
	"net/http"

	"vidtube/internal/apperror"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// LikeService 三类目标共用一套toggle语义：有记录就删、没有就插
// 唯一索引负责并发下的收敛：重复插入报1062时视作已点赞
type LikeService interface {
	// ToggleVideoLike 返回翻转后的状态，true表示本次变为已点赞
	ToggleVideoLike(ownerID, videoID uint64) (bool, error)
	ToggleCommentLike(ownerID, commentID uint64) (bool, error)
	ToggleTweetLike(ownerID, tweetID uint64) (bool, error)
	GetLikedVideos(ownerID uint64) ([]model.Video, error)
}

type likeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

func NewLikeService(likeRepo repository.LikeRepository, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, tweetRepo repository.TweetRepository) LikeService {
	return &likeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

func (s *likeService) ToggleVideoLike(ownerID, videoID uint64) (bool, error) {
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if isNotFoundErr(err) {
			return false, apperror.New(http.StatusNotFound, "视频不存在")
		}
		return false, err
	}
	return s.toggle(ownerID, repository.TargetVideo, videoID, &model.Like{OwnerID: ownerID, VideoID: &videoID})
}

func (s *likeService) ToggleCommentLike(ownerID, commentID uint64) (bool, error) {
	if _, err := s.commentRepo.FindByID(commentID); err != nil {
		if isNotFoundErr(err) {
			return false, apperror.New(http.StatusNotFound, "评论不存在")
		}
		return false, err
	}
	return s.toggle(ownerID, repository.TargetComment, commentID, &model.Like{OwnerID: ownerID, CommentID: &commentID})
}

func (s *likeService) ToggleTweetLike(ownerID, tweetID uint64) (bool, error) {
	if _, err := s.tweetRepo.FindByID(tweetID); err != nil {
		if isNotFoundErr(err) {
			return false, apperror.New(http.StatusNotFound, "动态不存在")
		}
		return false, err
	}
	return s.toggle(ownerID, repository.TargetTweet, tweetID, &model.Like{OwnerID: ownerID, TweetID: &tweetID})
}

func (s *likeService) GetLikedVideos(ownerID uint64) ([]model.Video, error) {
	return s.likeRepo.FindVideosLikedBy(ownerID)
}

// toggle 先删后插：删到了就是取消点赞；没删到就插入，撞唯一索引说明并发请求已经点过
func (s *likeService) toggle(ownerID uint64, target repository.LikeTarget, targetID uint64, like *model.Like) (bool, error) {
	deleted, err := s.likeRepo.DeleteByTarget(ownerID, target, targetID)
	if err != nil {
		return false, err
	}
	if deleted > 0 {
		return false, nil
	}

	if err := s.likeRepo.Create(like); err != nil {
		if isDuplicateKeyErr(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}
