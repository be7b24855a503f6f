package messaging

import (
	"context"

	"github.com/minatoh/spa-desk/pkg/logger"
	"github.com/minatoh/spa-desk/pkg/metrics"
)

// Publisher is the outbound event sink used by the front-desk services. A
// broker failure is logged and counted but never fails the operation that
// produced the event.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{})
}

const channel = "frontdesk.events"

type brokerPublisher struct {
	broker  Broker
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewPublisher(broker Broker, log *logger.Logger, m *metrics.Metrics) Publisher {
	return &brokerPublisher{broker: broker, logger: log, metrics: m}
}

func (p *brokerPublisher) Publish(ctx context.Context, eventType string, payload interface{}) {
	msg := Message{Type: eventType, Payload: payload}
	if err := p.broker.Publish(ctx, channel, msg); err != nil {
		if p.metrics != nil {
			p.metrics.EventsFailed.Inc()
		}
		p.logger.Error(err, "failed to publish event", "type", eventType)
		return
	}
	if p.metrics != nil {
		p.metrics.EventsPublished.Inc()
	}
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops every event. Used when no
// broker is configured and in tests.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, interface{}) {}
