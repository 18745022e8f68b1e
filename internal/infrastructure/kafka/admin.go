package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
)

type topicCreator interface {
	CreateTopics(ctx context.Context, partitions int32, replicationFactor int16, configs map[string]*string, topics ...string) (kadm.CreateTopicResponses, error)
}

// Admin wraps the kadm calls the change feed needs.
type Admin struct {
	client topicCreator
}

func NewAdmin(client *kadm.Client) *Admin {
	return &Admin{client: client}
}

// EnsureTopic creates topic unless it already exists.
func (a *Admin) EnsureTopic(ctx context.Context, topic string, partitions int32, replicationFactor int16) error {
	cctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := a.client.CreateTopics(cctx, partitions, replicationFactor, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	for _, r := range resp {
		if errors.Is(r.Err, kerr.TopicAlreadyExists) {
			utils.Logger.Debug("change feed topic exists", "topic", r.Topic)
			continue
		}
		if r.Err != nil {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
		utils.Logger.Info("change feed topic created", "topic", r.Topic, "partitions", partitions, "replication_factor", replicationFactor)
	}
	return nil
}
