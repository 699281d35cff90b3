package kafka

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cdcockrum/cneos-explorer/internal/config"
	"github.com/cdcockrum/cneos-explorer/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes normalized tables to a Kafka topic, one message per
// record. It implements explorer.Exporter.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured export topic.
// Export is best effort, so a single broker ack is enough.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaExportTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &Writer{writer: w, logger: logger}
}

// ExportTable serializes every record of a table and publishes them in a
// single WriteMessages call.
func (w *Writer) ExportTable(ctx context.Context, table *domain.Table) error {
	records := table.Records()
	if len(records) == 0 {
		return nil
	}

	retrievedAt := table.RetrievedAt.Format(time.RFC3339)
	msgs := make([]kafkago.Message, len(records))
	for i, record := range records {
		msg, err := serializeRecord(table.Kind, record, retrievedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}

	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write export messages: %w", err)
	}
	w.logger.Debug("exported table", "dataset", table.Kind, "records", len(records))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeRecord marshals one record into a keyed Kafka message. Map
// keys marshal in sorted order, so the key is deterministic for a
// record's content and replays land in the same partition.
func serializeRecord(kind domain.DatasetKind, record map[string]any, retrievedAt string) (kafkago.Message, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize record: %w", err)
	}

	sum := sha256.Sum256(data)
	key := fmt.Sprintf("%s-%x", kind, sum[:8])

	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "dataset", Value: []byte(kind)},
			{Key: "retrieved_at", Value: []byte(retrievedAt)},
		},
	}, nil
}
