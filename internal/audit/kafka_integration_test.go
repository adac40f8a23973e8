//go:build integration

package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"singate/internal/audit"
	"singate/pkg/testutil/containers"
)

func TestKafkaPublisher_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	redpanda := containers.NewRedpandaContainer(t)
	const topic = "singate.validations.test"

	publisher, err := audit.NewKafkaPublisher(ctx, []string{redpanda.Broker}, topic)
	require.NoError(t, err)
	defer publisher.Close()

	want := audit.Event{
		Timestamp:     time.Now().UTC().Truncate(time.Millisecond),
		Action:        audit.ActionSINValidated,
		Outcome:       "valid",
		SINMasked:     "046-***-286",
		Jurisdictions: []string{"ontario", "overseas_forces"},
		RequestID:     "req-integration",
	}
	require.NoError(t, publisher.Publish(ctx, want))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(redpanda.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, []byte("req-integration"), records[0].Key)

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, want.Action, got.Action)
	assert.Equal(t, want.Outcome, got.Outcome)
	assert.Equal(t, want.SINMasked, got.SINMasked)
	assert.Equal(t, want.Jurisdictions, got.Jurisdictions)
}

func TestNewKafkaPublisher_RequiresBrokers(t *testing.T) {
	_, err := audit.NewKafkaPublisher(context.Background(), nil, "topic")
	require.Error(t, err)
}
