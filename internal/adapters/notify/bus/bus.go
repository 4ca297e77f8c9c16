package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/roeshane/life-coach-reflections/internal/domain"
	"github.com/roeshane/life-coach-reflections/internal/ports"
	"go.uber.org/zap"
)

const TopicAdviceFailed = "advice.failed"

// Bus publishes advice failures on an in-process watermill channel. Publish
// blocks until every subscriber has acknowledged the message.
type Bus struct {
	pubSub *gochannel.GoChannel
	logger *zap.Logger
}

var _ ports.Notifier = (*Bus)(nil)

type noticePayload struct {
	PersonaID   string    `json:"persona_id"`
	DisplayName string    `json:"display_name"`
	Generation  string    `json:"generation"`
	Kind        string    `json:"kind"`
	StatusCode  int       `json:"status_code,omitempty"`
	At          time.Time `json:"at"`
}

func New(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer:            16,
		BlockPublishUntilSubscriberAck: true,
	}, NewLoggerAdapter(logger))

	return &Bus{pubSub: pubSub, logger: logger}
}

func (b *Bus) NotifyFailure(ctx context.Context, notice domain.FailureNotice) error {
	payload, err := json.Marshal(noticePayload{
		PersonaID:   string(notice.PersonaID),
		DisplayName: notice.DisplayName,
		Generation:  string(notice.Generation),
		Kind:        string(notice.Kind),
		StatusCode:  notice.StatusCode,
		At:          notice.At,
	})
	if err != nil {
		return fmt.Errorf("encode failure notice: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := b.pubSub.Publish(TopicAdviceFailed, msg); err != nil {
		return fmt.Errorf("publish failure notice: %w", err)
	}

	return nil
}

// Subscribe calls handler for every failure notice until ctx is done or the
// bus is closed. The returned channel is closed once the handler loop exits.
func (b *Bus) Subscribe(ctx context.Context, handler func(domain.FailureNotice)) (<-chan struct{}, error) {
	messages, err := b.pubSub.Subscribe(ctx, TopicAdviceFailed)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", TopicAdviceFailed, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range messages {
			var payload noticePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				b.logger.Warn("dropping malformed failure notice", zap.String("uuid", msg.UUID), zap.Error(err))
				msg.Ack()
				continue
			}

			handler(domain.FailureNotice{
				PersonaID:   domain.PersonaID(payload.PersonaID),
				DisplayName: payload.DisplayName,
				Generation:  domain.GenerationID(payload.Generation),
				Kind:        domain.ErrorKind(payload.Kind),
				StatusCode:  payload.StatusCode,
				At:          payload.At,
			})
			msg.Ack()
		}
	}()

	return done, nil
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}
