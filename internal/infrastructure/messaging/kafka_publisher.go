// Package messaging publica los eventos de inventario en Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/jhoicas/reposicion-api/internal/application/inventory"
	"github.com/jhoicas/reposicion-api/pkg/config"
)

var (
	_ inventory.EventPublisher = (*KafkaPublisher)(nil)
	_ inventory.EventPublisher = NoopPublisher{}
)

// messageWriter lo cumple *kafkaGo.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error
	Close() error
}

// KafkaPublisher un writer por topic. Los mensajes van con clave = ID de producto
// para que los eventos de un mismo producto caigan en la misma partición.
type KafkaPublisher struct {
	receipts messageWriter
	reorders messageWriter
}

// NewKafkaPublisher crea los writers de recepciones y reposiciones.
func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		receipts: newWriter(cfg.Brokers, cfg.ReceiptsTopic),
		reorders: newWriter(cfg.Brokers, cfg.ReordersTopic),
	}
}

func newWriter(brokers []string, topic string) *kafkaGo.Writer {
	return &kafkaGo.Writer{
		Addr:         kafkaGo.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkaGo.Hash{},
		RequiredAcks: kafkaGo.RequireOne,
		WriteTimeout: 5 * time.Second,
	}
}

// PublishReceipt publica una recepción confirmada.
func (p *KafkaPublisher) PublishReceipt(ctx context.Context, event inventory.ReceiptRecorded) error {
	msg, err := message(event.ProductID, event.Type, event)
	if err != nil {
		return err
	}
	return p.receipts.WriteMessages(ctx, msg)
}

// PublishReorders publica todas las órdenes de una corrida en una sola escritura.
func (p *KafkaPublisher) PublishReorders(ctx context.Context, events []inventory.ReorderPlaced) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafkaGo.Message, 0, len(events))
	for _, e := range events {
		msg, err := message(e.ProductID, e.Type, e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return p.reorders.WriteMessages(ctx, msgs...)
}

// Close cierra ambos writers.
func (p *KafkaPublisher) Close() error {
	return errors.Join(p.receipts.Close(), p.reorders.Close())
}

func message(productID int64, eventType string, event any) (kafkaGo.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	return kafkaGo.Message{
		Key:     []byte(strconv.FormatInt(productID, 10)),
		Value:   payload,
		Headers: []kafkaGo.Header{{Key: "event_type", Value: []byte(eventType)}},
	}, nil
}

// NoopPublisher descarta los eventos (Kafka no configurado).
type NoopPublisher struct{}

func (NoopPublisher) PublishReceipt(context.Context, inventory.ReceiptRecorded) error  { return nil }
func (NoopPublisher) PublishReorders(context.Context, []inventory.ReorderPlaced) error { return nil }
