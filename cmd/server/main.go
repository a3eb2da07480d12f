package main

import (
	"context"

	"vidtube/internal/config"
	"vidtube/internal/data"
	"vidtube/internal/handler"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/internal/router"
	"vidtube/internal/service"
	"vidtube/pkg/logger"
	"vidtube/pkg/rabbitmq"
	"vidtube/pkg/redis"
	"vidtube/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// .env不存在时静默跳过，容器环境直接注入环境变量
	_ = godotenv.Load()

	cfg := config.Load()
	logger.InitLogger(cfg.LogFile)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{})
	if err != nil {
		logger.Log.WithError(err).Fatal("数据库连接失败")
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Subscription{},
		&model.Tweet{},
		&model.Playlist{},
		&model.PlaylistVideo{},
	); err != nil {
		logger.Log.WithError(err).Fatal("数据库迁移失败")
	}

	rdb, err := redis.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Log.WithError(err).Fatal("Redis连接失败")
	}

	mqConn, err := rabbitmq.InitRabbitMQ(cfg.AMQPURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("RabbitMQ连接失败")
	}
	defer mqConn.Close()

	uploader, err := storage.NewS3Storage(context.Background(), storage.Options{
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		Endpoint:      cfg.S3Endpoint,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if err != nil {
		logger.Log.WithError(err).Fatal("对象存储初始化失败")
	}

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, rdb)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	uow := data.NewUnitOfWork(db, videoRepo, commentRepo, likeRepo, playlistRepo)

	userService := service.NewUserService(cfg, userRepo, videoRepo, subRepo, uploader)
	viewPublisher := service.NewAMQPViewPublisher(mqConn)
	videoService := service.NewVideoService(videoRepo, uow, uploader, viewPublisher)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	subService := service.NewSubscriptionService(subRepo, userRepo)
	tweetService := service.NewTweetService(tweetRepo, userRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo)
	dashboardService := service.NewDashboardService(userRepo, videoRepo, subRepo, likeRepo)

	r := router.SetupRouter(cfg, userRepo, router.Handlers{
		Healthcheck:  handler.NewHealthcheckHandler(),
		User:         handler.NewUserHandler(cfg, userService),
		Video:        handler.NewVideoHandler(videoService),
		Comment:      handler.NewCommentHandler(commentService),
		Like:         handler.NewLikeHandler(likeService),
		Subscription: handler.NewSubscriptionHandler(subService),
		Tweet:        handler.NewTweetHandler(tweetService),
		Playlist:     handler.NewPlaylistHandler(playlistService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	})

	logger.Log.WithField("port", cfg.Port).Info("HTTP服务启动")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.WithError(err).Fatal("HTTP服务异常退出")
	}
}
