package oplog

import (
	"context"
	"encoding/json"
	"time"

	"go-gamepedia/internal/domain/model"
	"go-gamepedia/internal/logging"
	"go-gamepedia/internal/mq/kafka"
	"go-gamepedia/internal/repository/dao"
	"go-gamepedia/internal/repository/postgres"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Consumer 操作日志落库端：从 Kafka 读中间件发出的条目写 user_action 表
type Consumer struct {
	inner  *kafka.Consumer
	dao    *dao.UserActionDAO
	logger *logging.Logger
}

// Entry 与 observability.OperationLog 发出的 JSON 对齐
type Entry struct {
	ActionName string `json:"action_name"`
	Path       string `json:"path"`
	Method     string `json:"method"`
	Status     int    `json:"status"`
	LatencyMs  int64  `json:"latency_ms"`
	IP         string `json:"ip"`
	UserID     int64  `json:"user_id"`
	Nickname   string `json:"nickname"`
	Time       string `json:"time"`
	Body       string `json:"body"`
	Query      string `json:"query"`
}

func NewConsumer(cfg Config, db *gorm.DB, l *logging.Logger) *Consumer {
	inner := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topics:  []string{cfg.Topic},
	}, l)
	return &Consumer{inner: inner, dao: dao.NewUserActionDAO(db), logger: l}
}

func (c *Consumer) Run(ctx context.Context) error {
	return c.inner.Start(ctx, func(ctx context.Context, m kafkaGo.Message) error {
		var e Entry
		if err := json.Unmarshal(m.Value, &e); err != nil {
			c.logger.Warn("oplog entry unmarshal failed", zap.Error(err))
			return nil // 坏消息直接跳过，不阻塞位点
		}
		ts := time.Now().Unix()
		if t, err := time.Parse(time.RFC3339, e.Time); err == nil {
			ts = t.Unix()
		}
		rec := model.UserAction{
			ActionName: e.ActionName,
			UID:        e.UserID,
			Nickname:   e.Nickname,
			AddTime:    ts,
			Data:       truncate(e.Body, 2000),
			URL:        e.Path,
			Method:     e.Method,
			Status:     e.Status,
			LatencyMs:  e.LatencyMs,
			IP:         e.IP,
		}
		return c.dao.Create(ctx, &rec)
	})
}

func (c *Consumer) Close() error { return c.inner.Close() }

func AutoMigrate(db *gorm.DB) error {
	return postgres.AutoMigrateModels(db, &model.UserAction{})
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
