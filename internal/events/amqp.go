package events

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/logging"
	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
)

const (
	ExchangeName           = "marketplace.events"
	RoutingKeyProjectEvent = "project.updated"
)

// AMQPPublisher mirrors project updates onto a topic exchange so
// out-of-process consumers (mailers, sync jobs) can react to them.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: ch}, nil
}

func (p *AMQPPublisher) ProjectUpdated(ctx context.Context, project *models.OnboardingProject) {
	body, err := json.Marshal(project)
	if err != nil {
		logging.Logger.Warnf("Event ID: AMQP_MARSHAL_FAILED, Description: Failed to marshal project %s: %v", project.ID.Hex(), err)
		return
	}

	err = p.channel.PublishWithContext(ctx, ExchangeName, RoutingKeyProjectEvent, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: AMQP_PUBLISH_FAILED, Description: Failed to publish project.updated for %s: %v", project.ID.Hex(), err)
	}
}

func (p *AMQPPublisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
