// pkg/messaging/nats.go
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"
)

// 行情入库主题，外部采集端发布归一化后的记录批次
const (
	SubjectDaily       = "market.daily"
	SubjectFlow        = "market.flow"
	SubjectDragonTiger = "market.dragon_tiger"
	SubjectMargin      = "market.margin"
	SubjectSector      = "market.sector"
	SubjectStocks      = "market.stocks"

	streamName = "MARKET"
)

// NATSClient NATS JetStream客户端 - 纯基础能力封装
type NATSClient struct {
	conn      *nats.Conn
	jetStream jetstream.JetStream
	ctx       context.Context
	cancel    context.CancelFunc
	consumers map[string]jetstream.ConsumeContext // 消费者管理
	mu        sync.Mutex                          // 保护consumers
	logger    *zap.Logger
}

// MessageHandler 通用消息处理函数类型
type MessageHandler func(data []byte) error

// NewNATSClient 创建新的NATS客户端
func NewNATSClient(natsURL, clientID string, logger *zap.Logger) (*NATSClient, error) {
	// 连接NATS
	nc, err := nats.Connect(natsURL,
		nats.Name(clientID),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1), // 无限重连
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS连接断开", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS重新连接成功")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("连接NATS失败: %w", err)
	}

	// 创建JetStream上下文
	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("创建JetStream失败: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	client := &NATSClient{
		conn:      nc,
		jetStream: js,
		ctx:       ctx,
		cancel:    cancel,
		consumers: make(map[string]jetstream.ConsumeContext),
		logger:    logger,
	}

	// 初始化行情Stream
	if err := client.setupStreams(); err != nil {
		logger.Warn("设置Streams失败", zap.Error(err))
	}

	return client, nil
}

// setupStreams 创建行情入库Stream
func (c *NATSClient) setupStreams() error {
	ctx, cancel := context.WithTimeout(c.ctx, 10*time.Second)
	defer cancel()

	_, err := c.jetStream.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"market.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   7 * 24 * time.Hour,
	})
	return err
}

// Publish 发布JSON消息
func (c *NATSClient) Publish(subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(c.ctx, 5*time.Second)
	defer cancel()

	if _, err := c.jetStream.Publish(ctx, subject, data); err != nil {
		return fmt.Errorf("发布消息失败: %w", err)
	}
	return nil
}

// Subscribe 订阅主题，handler返回错误时消息重投
func (c *NATSClient) Subscribe(subject, durable string, handler MessageHandler) error {
	ctx, cancel := context.WithTimeout(c.ctx, 10*time.Second)
	defer cancel()

	consumer, err := c.jetStream.CreateOrUpdateConsumer(ctx, streamName, jetstream.ConsumerConfig{
		Durable:       durable,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return fmt.Errorf("创建消费者失败: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		if err := handler(msg.Data()); err != nil {
			c.logger.Error("处理消息失败",
				zap.String("subject", msg.Subject()),
				zap.Error(err),
			)
			msg.Nak()
			return
		}
		msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("启动消费失败: %w", err)
	}

	c.mu.Lock()
	c.consumers[durable] = cc
	c.mu.Unlock()
	return nil
}

// Close 关闭客户端
func (c *NATSClient) Close() {
	c.mu.Lock()
	for _, cc := range c.consumers {
		cc.Stop()
	}
	c.mu.Unlock()

	c.cancel()
	c.conn.Close()
}
