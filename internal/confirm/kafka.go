package confirm

import (
	"context"
	"log"
	"time"

	kafkax "github.com/ariefcatur/go-storefront.git/internal/kafka"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// KafkaConfirmer publishes a CheckoutCompleted envelope per confirmed
// payment. Publishing is fire-and-forget; the log line is the local
// record.
type KafkaConfirmer struct {
	Producer *kafkax.Producer
	Service  string
}

func (k *KafkaConfirmer) ConfirmPayment(_ context.Context, c Confirmation) error {
	ev := Envelope{
		EventID:       uuid.NewString(),
		EventType:     EventCheckoutCompleted,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      k.Service,
		CorrelationID: c.SessionID,
		Payload:       kafkax.MustMarshal(CheckoutCompletedPayload{Confirmation: c}),
	}
	k.Producer.Publish(PartitionKey(c.SessionID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(EventCheckoutCompleted)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
	log.Printf("payment confirmed: session=%s amount=%d %s status=%s",
		c.SessionID, c.AmountTotalCents, c.Currency, c.PaymentStatus)
	return nil
}
