// Package notify consumes checkout confirmations off Kafka and records
// them. It stands in for fulfilment and customer notification.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ariefcatur/go-storefront.git/internal/confirm"
	"github.com/ariefcatur/go-storefront.git/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

type Service struct {
	Redis       *redis.Client
	ServiceName string

	// Record is the confirmation sink; defaults to a log line.
	Record func(p confirm.CheckoutCompletedPayload)
}

// HandleCheckoutCompleted is the consumer handler. Redeliveries and
// duplicate provider events are dropped by event-id dedup in Redis.
func (s *Service) HandleCheckoutCompleted(ctx context.Context, m kafkago.Message) error {
	var env confirm.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != confirm.EventCheckoutCompleted {
		return nil // ignore
	}

	dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	var p confirm.CheckoutCompletedPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return err
	}

	if s.Record != nil {
		s.Record(p)
		return nil
	}
	log.Printf("checkout completed: session=%s amount=%d %s status=%s email=%s",
		p.SessionID, p.AmountTotalCents, p.Currency, p.PaymentStatus, p.CustomerEmail)
	return nil
}
