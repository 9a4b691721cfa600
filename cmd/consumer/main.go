package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/muhammadheryan/contacts/cmd/config"
	"github.com/muhammadheryan/contacts/thirdparty/rabbitmq"
	"github.com/muhammadheryan/contacts/utils/logger"
	"go.uber.org/zap"
)

// The consumer writes every user mutation event to the structured audit log.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel, cfg.ServiceName+"-consumer"); err != nil {
		panic(err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer, err := rabbitmq.NewConsumer(cfg.GetAMQPURL(), auditUserEvent)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	logger.Info("User event consumer running", zap.String("queue", rabbitmq.UserEventsQueue))
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("consumer stopped", zap.Error(err))
	}
}

func auditUserEvent(ctx context.Context, msg rabbitmq.UserEventMessage) error {
	fields := []zap.Field{
		zap.String("event_id", msg.EventID),
		zap.String("event", string(msg.Event)),
		zap.Uint64("user_id", msg.UserID),
		zap.Time("occurred_at", msg.OccurredAt),
	}
	if msg.User != nil {
		fields = append(fields, zap.String("email", msg.User.Email))
	}
	logger.Info("user event", fields...)
	return nil
}
