package service

import (
	"net/http"
	"strings"

	"vidtube/internal/apperror"
	"vidtube/internal/model"
	"vidtube/internal/repository"
)

type TweetService interface {
	Create(ownerID uint64, content string) (*model.Tweet, error)
	GetAll() ([]model.Tweet, error)
	GetByUser(userID uint64) ([]model.Tweet, error)
	Update(ownerID, tweetID uint64, content string) (*model.Tweet, error)
	Delete(ownerID, tweetID uint64) error
}

type tweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository) TweetService {
	return &tweetService{
		tweetRepo: tweetRepo,
		userRepo:  userRepo,
	}
}

func (s *tweetService) Create(ownerID uint64, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.New(http.StatusBadRequest, "动态内容不能为空")
	}

	newTweet := &model.Tweet{
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.tweetRepo.Create(newTweet); err != nil {
		return nil, err
	}
	return s.tweetRepo.FindByID(newTweet.ID)
}

func (s *tweetService) GetAll() ([]model.Tweet, error) {
	return s.tweetRepo.FindAll()
}

func (s *tweetService) GetByUser(userID uint64) ([]model.Tweet, error) {
	if _, err := s.userRepo.FindPublicByID(userID); err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "用户不存在")
		}
		return nil, err
	}
	return s.tweetRepo.FindByOwner(userID)
}

func (s *tweetService) Update(ownerID, tweetID uint64, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.New(http.StatusBadRequest, "动态内容不能为空")
	}

	tweet, err := s.findOwnedTweet(ownerID, tweetID)
	if err != nil {
		return nil, err
	}

	tweet.Content = content
	if err := s.tweetRepo.Save(tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

func (s *tweetService) Delete(ownerID, tweetID uint64) error {
	if _, err := s.findOwnedTweet(ownerID, tweetID); err != nil {
		return err
	}
	return s.tweetRepo.Delete(tweetID)
}

func (s *tweetService) findOwnedTweet(ownerID, tweetID uint64) (*model.Tweet, error) {
	tweet, err := s.tweetRepo.FindByID(tweetID)
	if err != nil {
		if isNotFoundErr(err) {
			return nil, apperror.New(http.StatusNotFound, "动态不存在")
		}
		return nil, err
	}
	if tweet.OwnerID != ownerID {
		return nil, apperror.New(http.StatusForbidden, "无权操作他人的动态")
	}
	return tweet, nil
}
