package kafka

import (
	"context"
	"sync"
	"time"

	"go-gamepedia/internal/logging"
	"go-gamepedia/internal/metrics"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// AsyncMessage 待发送的操作日志条目
type AsyncMessage struct {
	Ctx     context.Context
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// AsyncSender 有界异步发送 + 批量聚合：worker 从 channel 取消息聚合后写 Kafka。
// 批量触发条件：达到 maxBatch 或等待超过 maxWait；队列满直接丢（oplog 可容忍丢失）。
// 批写失败降级为逐条重试。
type AsyncSender struct {
	producer *Producer
	logger   *logging.Logger
	queue    chan AsyncMessage
	workers  int
	wg       sync.WaitGroup
	stopCh   chan struct{}

	maxBatch int
	maxWait  time.Duration
}

func NewAsyncSender(p *Producer, l *logging.Logger, queueSize, workers, maxBatch int, maxWait time.Duration) *AsyncSender {
	if queueSize <= 0 {
		queueSize = 10000
	}
	if workers <= 0 {
		workers = 1
	}
	if maxBatch <= 0 {
		maxBatch = 50
	}
	if maxWait <= 0 {
		maxWait = 20 * time.Millisecond
	}
	return &AsyncSender{
		producer: p,
		logger:   l,
		queue:    make(chan AsyncMessage, queueSize),
		workers:  workers,
		stopCh:   make(chan struct{}),
		maxBatch: maxBatch,
		maxWait:  maxWait,
	}
}

func (s *AsyncSender) Start() {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

func (s *AsyncSender) worker() {
	defer s.wg.Done()
	batch := make([]AsyncMessage, 0, s.maxBatch)
	var timer *time.Timer
	var timerCh <-chan time.Time

	stopTimer := func() {
		if timer != nil {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timerCh = nil
		}
	}
	flush := func(reason string) {
		if len(batch) == 0 {
			return
		}
		s.flushBatch(batch, reason)
		batch = batch[:0]
		stopTimer()
	}

	for {
		select {
		case <-s.stopCh:
			// 关闭前清空残余队列
			for {
				select {
				case m := <-s.queue:
					metrics.OpLogKafkaQueueDepth.Dec()
					batch = append(batch, m)
					if len(batch) >= s.maxBatch {
						flush("shutdown")
					}
				default:
					flush("shutdown")
					return
				}
			}
		case m := <-s.queue:
			metrics.OpLogKafkaQueueDepth.Dec()
			batch = append(batch, m)
			if len(batch) == 1 {
				if timer == nil {
					timer = time.NewTimer(s.maxWait)
				} else {
					stopTimer()
					timer.Reset(s.maxWait)
				}
				timerCh = timer.C
			}
			if len(batch) >= s.maxBatch {
				flush("size")
			}
		case <-timerCh:
			flush("timeout")
		}
	}
}

func (s *AsyncSender) flushBatch(batch []AsyncMessage, reason string) {
	msgs := make([]kafkaGo.Message, 0, len(batch))
	spans := make([]trace.Span, 0, len(batch))
	for _, m := range batch {
		ctx := m.Ctx
		if ctx == nil {
			ctx = context.Background()
		}
		spanCtx, span := s.producer.startSpan(ctx)
		var hs []kafkaGo.Header
		for k, v := range m.Headers {
			hs = append(hs, kafkaGo.Header{Key: k, Value: []byte(v)})
		}
		hs = s.producer.injectHeaders(spanCtx, hs)
		msgs = append(msgs, kafkaGo.Message{Key: m.Key, Value: m.Value, Time: time.Now(), Headers: hs})
		spans = append(spans, span)
	}
	writeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	err := s.producer.Writer.WriteMessages(writeCtx, msgs...)
	cancel()
	if err != nil {
		for _, sp := range spans {
			sp.SetStatus(codes.Error, err.Error())
			sp.RecordError(err)
			sp.End()
		}
		metrics.OpLogKafkaErrors.Add(float64(len(batch)))
		if s.logger != nil {
			s.logger.Warn("oplog batch write failed, falling back to single sends",
				zap.Int("batch", len(batch)), zap.Error(err))
		}
		for _, m := range batch {
			ctx := m.Ctx
			if ctx == nil {
				ctx = context.Background()
			}
			_ = s.producer.SendWithHeaders(ctx, m.Key, m.Value, m.Headers)
		}
	} else {
		for _, sp := range spans {
			sp.End()
		}
	}
	metrics.OpLogKafkaFlushTotal.WithLabelValues(reason).Inc()
	metrics.OpLogKafkaBatchSize.Observe(float64(len(batch)))
}

// Enqueue 非阻塞放入，满则丢弃
func (s *AsyncSender) Enqueue(m AsyncMessage) {
	select {
	case s.queue <- m:
		metrics.OpLogKafkaEnqueue.WithLabelValues("ok").Inc()
		metrics.OpLogKafkaQueueDepth.Inc()
	default:
		metrics.OpLogKafkaEnqueue.WithLabelValues("dropped").Inc()
	}
}

// Close 停止 worker 并冲刷残余批次
func (s *AsyncSender) Close(ctx context.Context) error {
	close(s.stopCh)
	s.wg.Wait()
	return nil
}
