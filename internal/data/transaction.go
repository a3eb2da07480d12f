package data

import (
	"vidtube/internal/repository"

	"gorm.io/gorm"
)

// UnitOfWork 事务管理器接口
type UnitOfWork interface {
	// Execute 将一个函数包裹在数据库事务中执行，
	// 并为这个函数提供能在事务中工作的Repositories
	Execute(fn func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有需要在同一个事务中操作的Repository
// 目前的使用方是视频删除：视频、评论、点赞、收藏夹条目一起清理
type TransactionalRepositories struct {
	VideoRepo    repository.VideoRepository
	CommentRepo  repository.CommentRepository
	LikeRepo     repository.LikeRepository
	PlaylistRepo repository.PlaylistRepository
}

type gormUnitOfWork struct {
	db           *gorm.DB
	videoRepo    repository.VideoRepository
	commentRepo  repository.CommentRepository
	likeRepo     repository.LikeRepository
	playlistRepo repository.PlaylistRepository
}

// NewUnitOfWork 创建基于GORM的工作单元，接收原始的、非事务的repositories
func NewUnitOfWork(db *gorm.DB, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, likeRepo repository.LikeRepository, playlistRepo repository.PlaylistRepository) UnitOfWork {
	return &gormUnitOfWork{
		db:           db,
		videoRepo:    videoRepo,
		commentRepo:  commentRepo,
		likeRepo:     likeRepo,
		playlistRepo: playlistRepo,
	}
}

func (u *gormUnitOfWork) Execute(fn func(repos *TransactionalRepositories) error) error {
	// 返回error则ROLLBACK，返回nil则COMMIT
	return u.db.Transaction(func(tx *gorm.DB) error {
		transactionalRepos := &TransactionalRepositories{
			VideoRepo:    u.videoRepo.WithTx(tx),
			CommentRepo:  u.commentRepo.WithTx(tx),
			LikeRepo:     u.likeRepo.WithTx(tx),
			PlaylistRepo: u.playlistRepo.WithTx(tx),
		}
		return fn(transactionalRepos)
	})
}
