package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/OliveiraNt/netbind/internal/config"
	"github.com/OliveiraNt/netbind/internal/domain"
	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"
)

const produceTimeout = 10 * time.Second

type producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
	Flush(ctx context.Context) error
	Close()
}

// Publisher writes color events to a topic, keyed by color name so the
// events of one color stay ordered.
type Publisher struct {
	client producer
	topic  string
}

// NewPublisher connects to the cluster in cfg and makes sure the topic
// exists.
func NewPublisher(ctx context.Context, cfg config.EventsConfig) (*Publisher, error) {
	client, err := NewClient(cfg.Cluster)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	if err := NewAdmin(kadm.NewClient(client)).EnsureTopic(ctx, cfg.Topic, cfg.Partitions, cfg.ReplicationFactor); err != nil {
		client.Close()
		return nil, err
	}
	utils.Logger.Info("color change feed enabled", "topic", cfg.Topic, "brokers", cfg.Cluster.Brokers, "auth", cfg.Cluster.AuthType())
	return &Publisher{client: client, topic: cfg.Topic}, nil
}

// Publish queues ev and returns without waiting for the broker. Delivery
// failures are logged when the record completes. The record outlives the
// request context but not produceTimeout.
func (p *Publisher) Publish(ctx context.Context, ev domain.ColorEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(ev.Color.Name),
		Value:     value,
		Timestamp: ev.At,
		Headers:   []kgo.RecordHeader{{Key: "type", Value: []byte(ev.Type)}},
	}

	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), produceTimeout)
	p.client.Produce(cctx, rec, func(r *kgo.Record, err error) {
		defer cancel()
		if err != nil {
			utils.Logger.Error("color event not delivered", "topic", p.topic, "type", ev.Type, "name", ev.Color.Name, "err", err)
			return
		}
		utils.Logger.Debug("color event published", "topic", p.topic, "type", ev.Type, "name", ev.Color.Name, "partition", r.Partition, "offset", r.Offset)
	})
	return nil
}

// Close waits up to produceTimeout for queued events, then closes the client.
func (p *Publisher) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), produceTimeout)
	defer cancel()
	if err := p.client.Flush(ctx); err != nil {
		utils.Logger.Warn("flushing color events failed", "topic", p.topic, "err", err)
	}
	p.client.Close()
}
