package main

import (
	"encoding/json"

	"vidtube/internal/config"
	"vidtube/internal/model"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	"vidtube/pkg/logger"
	"vidtube/pkg/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 观看事件消费者：从队列取出观看事件，累加播放量并更新观看者的观看历史
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.InitLogger(cfg.LogFile)

	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{})
	if err != nil {
		logger.Log.WithError(err).Fatal("数据库连接失败")
	}

	mqConn, err := rabbitmq.InitRabbitMQ(cfg.AMQPURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("RabbitMQ连接失败")
	}
	defer mqConn.Close()

	ch, err := mqConn.Channel()
	if err != nil {
		logger.Log.WithError(err).Fatal("无法打开RabbitMQ Channel")
	}
	defer ch.Close()

	// 与生产方一致的幂等声明
	if _, err := ch.QueueDeclare(service.QueueView, true, false, false, false, nil); err != nil {
		logger.Log.WithError(err).Fatal("无法声明观看事件队列")
	}

	// 手动ack，处理完一条再取下一条
	if err := ch.Qos(1, 0, false); err != nil {
		logger.Log.WithError(err).Fatal("设置Qos失败")
	}
	deliveries, err := ch.Consume(service.QueueView, "", false, false, false, false, nil)
	if err != nil {
		logger.Log.WithError(err).Fatal("订阅观看事件队列失败")
	}

	videoRepo := repository.NewVideoRepository(db, nil)

	logger.Log.Info("观看事件消费者启动")
	for d := range deliveries {
		handleDelivery(db, videoRepo, d)
	}
	logger.Log.Warn("投递通道已关闭，消费者退出")
}

func handleDelivery(db *gorm.DB, videoRepo repository.VideoRepository, d amqp.Delivery) {
	var msg service.ViewMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		// 格式坏掉的消息重试也没用，直接丢弃
		logger.Log.WithError(err).Warn("观看事件反序列化失败，丢弃消息")
		_ = d.Nack(false, false)
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := videoRepo.WithTx(tx).IncrementViews(msg.VideoID); err != nil {
			return err
		}
		// 匿名访问者没有观看历史
		if msg.UserID > 0 {
			return tx.Model(&model.User{}).
				Where("id = ?", msg.UserID).
				Update("watch_history_id", msg.VideoID).Error
		}
		return nil
	})
	if err != nil {
		logCtx := logger.Log.WithError(err).WithField("video_id", msg.VideoID)
		if d.Redelivered {
			// 第二次还失败就放弃，避免毒消息无限循环
			logCtx.Error("观看事件重试仍失败，丢弃消息")
			_ = d.Nack(false, false)
		} else {
			logCtx.Warn("观看事件处理失败，重新入队")
			_ = d.Nack(false, true)
		}
		return
	}

	_ = d.Ack(false)
}
