package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/tiagomuniz-ia/agendapro-final/internal/domain"
	pkgkafka "github.com/tiagomuniz-ia/agendapro-final/pkg/kafka"
	"github.com/tiagomuniz-ia/agendapro-final/pkg/logger"
)

// Kafka topic for user domain events.
const TopicUserLoggedIn = "agendapro.user.logged_in"

// Aggregate type constant.
const AggregateTypeUser = "user"

// Source identifier for events originating from the auth service.
const SourceAuthService = "auth-service"

// UserLoggedInData is the payload for a user.logged_in event.
type UserLoggedInData struct {
	ID       int64     `json:"id"`
	Email    string    `json:"email"`
	Cargo    string    `json:"cargo"`
	LoggedAt time.Time `json:"logged_at"`
}

// Producer publishes auth domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the auth service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserLoggedIn publishes a user.logged_in event.
func (p *Producer) PublishUserLoggedIn(ctx context.Context, user *domain.User) error {
	data := UserLoggedInData{
		ID:       user.ID,
		Email:    user.Email,
		Cargo:    user.Cargo,
		LoggedAt: time.Now().UTC(),
	}

	aggregateID := strconv.FormatInt(user.ID, 10)
	ev, err := pkgkafka.NewEvent(TopicUserLoggedIn, aggregateID, AggregateTypeUser, SourceAuthService, data)
	if err != nil {
		return fmt.Errorf("create user.logged_in event: %w", err)
	}

	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		ev.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, TopicUserLoggedIn, ev); err != nil {
		return fmt.Errorf("publish user.logged_in event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.logged_in event",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return nil
}
