// Package events publica los avisos del almacén en Kafka para consumidores externos.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/navbahor-erp/internal/application/ports"
	"github.com/jhoicas/navbahor-erp/pkg/config"
	"github.com/segmentio/kafka-go"
)

var _ ports.AdminNotifier = (*KafkaPublisher)(nil)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Event mensaje publicado en el tópico de notificaciones.
type Event struct {
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Type       string    `json:"type"`
	Link       string    `json:"link,omitempty"`
	BatchID    string    `json:"batch_id,omitempty"`
	WaybillID  string    `json:"waybill_id,omitempty"`
	TxType     string    `json:"transaction_type,omitempty"`
	Items      int       `json:"items"`
	OccurredAt time.Time `json:"occurred_at"`
}

// KafkaPublisher sumidero de avisos; la clave del mensaje es el lote para conservar el orden por lote.
type KafkaPublisher struct {
	w   messageWriter
	now func() time.Time
}

// NewKafkaPublisher construye el writer sobre los brokers configurados.
func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.NotificationsTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
		now: time.Now,
	}
}

func (p *KafkaPublisher) NotifyAdmins(ctx context.Context, ev ports.AdminEvent) error {
	value, err := json.Marshal(Event{
		Title:      ev.Title,
		Message:    ev.Message,
		Type:       ev.Type,
		Link:       ev.Link,
		BatchID:    ev.BatchID,
		WaybillID:  ev.WaybillID,
		TxType:     string(ev.TxType),
		Items:      ev.Items,
		OccurredAt: p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := p.w.WriteMessages(ctx, kafka.Message{Key: []byte(ev.BatchID), Value: value}); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

// Close vacía y cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
