package repository

import (
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type TweetRepository interface {
	Create(tweet *model.Tweet) error
	FindByID(tweetID uint64) (*model.Tweet, error)
	FindAll() ([]model.Tweet, error)
	FindByOwner(ownerID uint64) ([]model.Tweet, error)
	Save(tweet *model.Tweet) error
	Delete(tweetID uint64) error
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(tweet *model.Tweet) error {
	return r.db.Create(tweet).Error
}

func (r *tweetRepository) FindByID(tweetID uint64) (*model.Tweet, error) {
	var result model.Tweet
	err := r.db.Preload("Owner").First(&result, tweetID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *tweetRepository) FindAll() ([]model.Tweet, error) {
	var tweets []model.Tweet
	err := r.db.Preload("Owner").Order("created_at desc").Find(&tweets).Error
	return tweets, err
}

func (r *tweetRepository) FindByOwner(ownerID uint64) ([]model.Tweet, error) {
	var tweets []model.Tweet
	err := r.db.Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&tweets).Error
	return tweets, err
}

func (r *tweetRepository) Save(tweet *model.Tweet) error {
	return r.db.Save(tweet).Error
}

func (r *tweetRepository) Delete(tweetID uint64) error {
	return r.db.Delete(&model.Tweet{}, tweetID).Error
}
