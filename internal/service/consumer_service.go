package service

import (
	"context"
	"encoding/json"
	"sync"

	"ai-voice-assistant-be/internal/dto"
	"ai-voice-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error

	// Totals returns a copy of per-kind interaction counters.
	Totals() map[string]int64
}

// consumerService drains the interaction topic: every answered (or failed)
// question becomes a structured log line and bumps a per-kind counter, so
// operators can see what the knowledge base fails to cover without any
// database behind it.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger

	mu     sync.Mutex
	totals map[string]int64
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
		totals:    make(map[string]int64),
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) Totals() map[string]int64 {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	out := make(map[string]int64, len(cs.totals))
	for k, v := range cs.totals {
		out[k] = v
	}
	return out
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.PublishInteractionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal interaction", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.mu.Lock()
	cs.totals[payload.Kind]++
	total := cs.totals[payload.Kind]
	cs.mu.Unlock()

	cs.logger.Info("Consumer", "Interaction recorded", map[string]interface{}{
		"mode":       payload.Mode,
		"kind":       payload.Kind,
		"elapsed_ms": payload.ElapsedMs,
		"kind_total": total,
	})

	msg.Ack()
}
