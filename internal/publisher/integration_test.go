//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"fluffyshare/internal/domain"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
	logger    *slog.Logger
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange",
		RoutingKey: "test-routing-key",
		QueueName:  "test-queue",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.NoError(err)
	s.NotNil(pub)

	err = pub.Close()
	s.NoError(err)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishCompleted() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-completed",
		RoutingKey: "test-routing-key-completed",
		QueueName:  "test-queue-completed",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	completed := time.Now().UTC().Truncate(time.Millisecond)
	run := &domain.ProcessingLog{
		ID:              "8a6f0d5e-2a55-4f0e-9a57-7f1d8c2f7b10",
		RunType:         domain.RunDailyBatch,
		Status:          domain.RunCompleted,
		TweetsProcessed: 42,
		ScoresComputed:  40,
		APICallsUsed:    5,
		StartedAt:       completed.Add(-time.Minute),
		CompletedAt:     &completed,
		DurationMs:      60000,
	}

	err = pub.PublishRun(s.ctx, run)
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	s.Equal("application/json", msg.ContentType)
	s.Equal(run.ID, msg.MessageId)
	s.Equal(EventRunCompleted, msg.Type)

	var received RunMessage
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal(EventRunCompleted, received.Event)
	s.Equal(run.ID, received.Run.ID)
	s.Equal(domain.RunDailyBatch, received.Run.RunType)
	s.Equal(42, received.Run.TweetsProcessed)
	s.Equal(int64(5), received.Run.APICallsUsed)
	s.False(received.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishFailed() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-failed",
		RoutingKey: "test-routing-key-failed",
		QueueName:  "test-queue-failed",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	run := &domain.ProcessingLog{
		ID:        "run-failed",
		RunType:   domain.RunManualTrigger,
		Status:    domain.RunFailed,
		Errors:    []string{"fetch mentions: tweet api: status 401: unauthorized"},
		StartedAt: time.Now(),
	}

	err = pub.PublishRun(s.ctx, run)
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	var received RunMessage
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal(EventRunFailed, received.Event)
	s.Equal(run.Errors, received.Run.Errors)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_MessagePersistence() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-persist",
		RoutingKey: "test-routing-key-persist",
		QueueName:  "test-queue-persist",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	err = pub.PublishRun(s.ctx, &domain.ProcessingLog{ID: "run-persist", Status: domain.RunCompleted})
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)
}

func (s *RabbitMQIntegrationSuite) consumeMessage(cfg Config) *amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		return &msg
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for message")
		return nil
	}
}