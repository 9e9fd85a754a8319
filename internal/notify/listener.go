package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"cantinho-algarvio/internal/domain"
)

type NotificationRepository interface {
	InsertNotification(ctx context.Context, n *domain.Notification) error
}

// MarkerStore remembers processed event ids. The change feed is at-least-once,
// so without markers a redelivered event would double-insert notifications.
type MarkerStore interface {
	EventMarkerKey(eventID string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetMarker(ctx context.Context, key string) error
}

var statusLabels = map[string]string{
	domain.StatusPending:    "pendente",
	domain.StatusConfirmed:  "confirmado",
	domain.StatusPreparing:  "em preparação",
	domain.StatusDelivering: "em entrega",
	domain.StatusCompleted:  "concluído",
	domain.StatusCancelled:  "cancelado",
}

// Listener subscribes to the orders change feed for the lifetime of the
// admin process. Each insert or status-change event becomes a notification
// row plus a transient toast; every processed event also triggers the
// caller-supplied refresh so admin list views follow the latest state.
type Listener struct {
	Reader  *kafka.Reader
	Repo    NotificationRepository
	Markers MarkerStore

	// OnToast receives the freshly created notification; OnRefresh fires
	// after every event. Either may be nil.
	OnToast   func(domain.Notification)
	OnRefresh func()
}

func NewListener(reader *kafka.Reader, repo NotificationRepository, markers MarkerStore) *Listener {
	return &Listener{Reader: reader, Repo: repo, Markers: markers}
}

// Start consumes events until the context is cancelled or Stop is called.
func (l *Listener) Start(ctx context.Context) {
	log.Println("Starting order notification listener...")
	for {
		message, err := l.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Error reading order event: %v", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling order event: %v", err)
			continue
		}

		l.ProcessEvent(ctx, event)
	}
}

// Stop tears the subscription down so remounts never stack duplicate handlers.
func (l *Listener) Stop() error {
	return l.Reader.Close()
}

// ProcessEvent turns one feed event into its side effects. The event id is
// marked only after the notification insert succeeded, so a failed insert
// leaves the event unmarked and a redelivery retries it; the rare crash
// between insert and mark costs a duplicate toast, never a lost notification.
func (l *Listener) ProcessEvent(ctx context.Context, event domain.OrderEvent) {
	if l.seen(ctx, event) {
		log.Printf("Skipping already processed event %s", event.EventID)
		l.refresh()
		return
	}

	var err error
	switch event.Type {
	case domain.EventOrderCreated:
		err = l.handleCreated(ctx, event)
	case domain.EventOrderStatusChanged:
		err = l.handleStatusChanged(ctx, event)
	default:
		log.Printf("Ignoring order event of type %q", event.Type)
	}

	if err == nil {
		l.mark(ctx, event)
	}
	l.refresh()
}

func (l *Listener) handleCreated(ctx context.Context, event domain.OrderEvent) error {
	customer := domain.NormalizeCustomerInfo([]byte(event.CustomerInfo))

	return l.notify(ctx, domain.Notification{
		ID:      uuid.NewString(),
		Title:   "Novo pedido",
		Message: fmt.Sprintf("%s fez um pedido de %s", customer.Name, domain.FormatPrice(event.Total)),
		Type:    "new_order",
		OrderID: event.OrderID,
	})
}

func (l *Listener) handleStatusChanged(ctx context.Context, event domain.OrderEvent) error {
	// Updates that did not actually change the status produce nothing.
	if event.OldStatus == event.NewStatus {
		return nil
	}

	label, ok := statusLabels[event.NewStatus]
	if !ok {
		label = event.NewStatus
	}

	return l.notify(ctx, domain.Notification{
		ID:      uuid.NewString(),
		Title:   "Pedido atualizado",
		Message: fmt.Sprintf("Pedido %s agora está %s", shortID(event.OrderID), label),
		Type:    "status_change",
		OrderID: event.OrderID,
	})
}

func (l *Listener) notify(ctx context.Context, n domain.Notification) error {
	if err := l.Repo.InsertNotification(ctx, &n); err != nil {
		log.Printf("Error storing notification for order %s: %v", n.OrderID, err)
		return err
	}
	if l.OnToast != nil {
		l.OnToast(n)
	}
	return nil
}

func (l *Listener) seen(ctx context.Context, event domain.OrderEvent) bool {
	if l.Markers == nil || event.EventID == "" {
		return false
	}
	key := l.Markers.EventMarkerKey(event.EventID)
	exists, err := l.Markers.Exists(ctx, key)
	return err == nil && exists
}

func (l *Listener) mark(ctx context.Context, event domain.OrderEvent) {
	if l.Markers == nil || event.EventID == "" {
		return
	}
	key := l.Markers.EventMarkerKey(event.EventID)
	if err := l.Markers.SetMarker(ctx, key); err != nil {
		log.Printf("Error marking event %s: %v", event.EventID, err)
	}
}

func (l *Listener) refresh() {
	if l.OnRefresh != nil {
		l.OnRefresh()
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}
