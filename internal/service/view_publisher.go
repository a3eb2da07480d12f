package service

import (
	"encoding/json"

	"github.com/streadway/amqp"
)

const (
	// 遵循：项目名.业务领域.实体/功能
	QueueView = "vidtube.view.queue"
)

// ViewMessage 观看事件，消费者进程据此累加播放量并更新观看历史
type ViewMessage struct {
	VideoID uint64 `json:"video_id"`
	UserID  uint64 `json:"user_id"` // 0表示未登录的访问者
}

// ViewEventPublisher 观看事件的投递出口，视频服务只依赖这个抽象
type ViewEventPublisher interface {
	PublishView(msg ViewMessage) error
}

type amqpViewPublisher struct {
	conn *amqp.Connection
}

// NewAMQPViewPublisher 基于RabbitMQ的投递实现，启动时幂等声明持久化队列
func NewAMQPViewPublisher(conn *amqp.Connection) ViewEventPublisher {
	ch, err := conn.Channel()
	if err != nil {
		panic("无法打开RabbitMQ Channel")
	}
	defer ch.Close()
	if _, err := ch.QueueDeclare(QueueView, true, false, false, false, nil); err != nil {
		panic("无法声明观看事件队列")
	}

	return &amqpViewPublisher{conn: conn}
}

// PublishView 发送观看事件到RabbitMQ，每条消息用独立的临时Channel
func (p *amqpViewPublisher) PublishView(msg ViewMessage) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return ch.Publish(
		"",        // exchange默认交换机
		QueueView, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
}
