package service

import (
	"context"
	"encoding/json"

	"task-notes-be/internal/dto"
	"task-notes-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// auditConsumerService drains the note audit topic into the isolated audit
// log, keeping write amplification out of the request path.
type auditConsumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	auditLogger logger.ILogger
}

func NewAuditConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	auditLogger logger.ILogger,
) IConsumerService {
	return &auditConsumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		auditLogger: auditLogger,
	}
}

func (cs *auditConsumerService) Consume(ctx context.Context) error {
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

func (cs *auditConsumerService) processMessage(msg *message.Message) {
	var payload dto.NoteAuditMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.auditLogger.Error("audit", "failed to unmarshal audit message", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite redelivery.
		msg.Ack()
		return
	}

	details := map[string]interface{}{
		"action":  payload.Action,
		"note_id": payload.NoteId,
		"at":      payload.At,
	}
	if payload.Author != nil {
		details["author"] = *payload.Author
	}
	if payload.TaskId != nil {
		details["task_id"] = *payload.TaskId
	}

	cs.auditLogger.Info("audit", "note mutation", details)
	msg.Ack()
}
