package notify

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PatternSubscriber interface {
	PSubscribe(ctx context.Context, pattern string, fn func(channel string, payload []byte)) error
}

// Subscriber forwards notifications published by any instance to this
// instance's hub.
type Subscriber struct {
	sub    PatternSubscriber
	hub    LocalHub
	logger *zap.Logger
}

func NewSubscriber(sub PatternSubscriber, hub LocalHub, logger *zap.Logger) *Subscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Subscriber{sub: sub, hub: hub, logger: logger}
}

// Run blocks until ctx is done or the subscription fails.
func (s *Subscriber) Run(ctx context.Context) error {
	s.logger.Info("notification subscriber started", zap.String("pattern", ChannelPattern))
	return s.sub.PSubscribe(ctx, ChannelPattern, s.Handle)
}

func (s *Subscriber) Handle(channel string, payload []byte) {
	id, err := uuid.Parse(strings.TrimPrefix(channel, ChannelPrefix))
	if err != nil {
		s.logger.Warn("notification on unexpected channel", zap.String("channel", channel))
		return
	}
	s.hub.SendTo(id, payload)
}
