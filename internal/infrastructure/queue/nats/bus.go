package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/resilience"
)

// CaseBus fans answered cases out to every API replica so that each one can
// keep its activity window current.
type CaseBus struct {
	conn     *nats.Conn
	subject  string
	executor *resilience.Executor
	logger   *slog.Logger
}

type Options struct {
	ConnectTimeout       time.Duration
	ReconnectWait        time.Duration
	MaxReconnects        int
	RetryOnFailedConnect *bool
	ResilienceExecutor   *resilience.Executor
	Logger               *slog.Logger
}

func New(url, subject string) (*CaseBus, error) {
	return NewWithOptions(url, subject, Options{})
}

func NewWithOptions(url, subject string, options Options) (*CaseBus, error) {
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	retryOnFailedConnect := true
	if options.RetryOnFailedConnect != nil {
		retryOnFailedConnect = *options.RetryOnFailedConnect
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(
		url,
		nats.Name("nerdvana-retrieval"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(retryOnFailedConnect),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return &CaseBus{
		conn:     conn,
		subject:  subject,
		executor: options.ResilienceExecutor,
		logger:   logger,
	}, nil
}

func (b *CaseBus) Close() {
	if b.conn != nil {
		b.conn.Close()
	}
}

// RecordCase publishes the event. Delivery is at-most-once.
func (b *CaseBus) RecordCase(ctx context.Context, event domain.CaseEvent) error {
	payload, err := EncodeCase(event)
	if err != nil {
		return err
	}

	call := func(_ context.Context) error {
		if err := b.conn.Publish(b.subject, payload); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	}

	if b.executor != nil {
		err = b.executor.Execute(ctx, "nats.publish", call, classifyNATSError)
	} else {
		err = call(ctx)
	}
	return resilience.WrapTemporary("nats publish", err, classifyNATSError)
}

// SubscribeCases delivers every case event to handler until ctx is done.
// Each subscriber gets its own copy; there is no queue group.
func (b *CaseBus) SubscribeCases(ctx context.Context, handler func(context.Context, domain.CaseEvent) error) error {
	onMessage := func(msg *nats.Msg) {
		if ctx.Err() != nil {
			return
		}
		event, err := DecodeCase(msg.Data)
		if err != nil {
			b.logger.Warn("case_event_decode_failed", "subject", msg.Subject, "error", err)
			return
		}
		if err := handler(ctx, event); err != nil {
			b.logger.Warn("case_event_handler_failed", "case_id", event.ID, "error", err)
		}
	}

	sub, err := b.openSubscription(func() (subscription, error) {
		return b.conn.Subscribe(b.subject, onMessage)
	}, b.conn.Flush)
	if err != nil {
		return err
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	return nil
}

type subscription interface {
	Unsubscribe() error
	Drain() error
}

// openSubscription registers the subscription and waits for the server to
// acknowledge it. A subscription whose flush fails is removed again.
func (b *CaseBus) openSubscription(subscribe func() (subscription, error), flush func() error) (subscription, error) {
	sub, err := subscribe()
	if err != nil {
		return nil, fmt.Errorf("nats subscribe: %w", err)
	}
	if err := flush(); err != nil {
		if unsubErr := sub.Unsubscribe(); unsubErr != nil {
			b.logger.Warn("case_subscription_unsubscribe_failed", "subject", b.subject, "error", unsubErr)
		}
		return nil, fmt.Errorf("nats flush: %w", err)
	}
	return sub, nil
}

func EncodeCase(event domain.CaseEvent) ([]byte, error) {
	if strings.TrimSpace(event.UserID) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "encode case", fmt.Errorf("user id is required"))
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode case: %w", err)
	}
	return payload, nil
}

func DecodeCase(data []byte) (domain.CaseEvent, error) {
	var event domain.CaseEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return domain.CaseEvent{}, domain.WrapError(domain.ErrInvalidInput, "decode case", err)
	}
	if strings.TrimSpace(event.UserID) == "" {
		return domain.CaseEvent{}, domain.WrapError(domain.ErrInvalidInput, "decode case", fmt.Errorf("user id is required"))
	}
	return event, nil
}
