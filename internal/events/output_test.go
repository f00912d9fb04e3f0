package events

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLocationEvent(at time.Time) LocationChangedEvent {
	return LocationChangedEvent{
		BaseEvent: BaseEvent{
			Timestamp: at.Unix(),
			EventType: TopicLocationChanged,
			UserID:    "user-1",
		},
		Lat:  6.9355,
		Lng:  79.8487,
		Mode: "automatic",
	}
}

func TestJSONOutputPartitionsByTimestamp(t *testing.T) {
	dir := t.TempDir()
	out := NewJSONOutput(dir, "geo_events")
	defer out.Close()

	at := time.Date(2026, time.March, 10, 14, 30, 0, 0, time.Local)
	require.NoError(t, Publish(out, TopicLocationChanged, sampleLocationEvent(at)))
	require.NoError(t, Publish(out, TopicLocationChanged, sampleLocationEvent(at)))
	require.NoError(t, out.Close())

	partition := filepath.Join(dir, "geo_events", TopicLocationChanged,
		"year=2026", "month=03", "day=10", "hour=14", "data.json")
	data, err := os.ReadFile(partition)
	require.NoError(t, err)

	lines := 0
	for _, line := range splitLines(data) {
		var event map[string]interface{}
		require.NoError(t, json.Unmarshal(line, &event))
		assert.Equal(t, TopicLocationChanged, event["eventType"])
		assert.InDelta(t, 6.9355, event["lat"], 1e-9)
		lines++
	}
	assert.Equal(t, 2, lines)
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			if i > start {
				lines = append(lines, data[start:i])
			}
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}

func TestCSVOutputWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	out := NewCSVOutput(dir, "geo_events")

	at := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)
	require.NoError(t, Publish(out, TopicLocationChanged, sampleLocationEvent(at)))
	require.NoError(t, Publish(out, TopicLocationChanged, sampleLocationEvent(at)))
	require.NoError(t, out.Close())

	partition := filepath.Join(dir, "geo_events", TopicLocationChanged,
		"year=2026", "month=03", "day=10", "hour=09", "data.csv")
	data, err := os.ReadFile(partition)
	require.NoError(t, err)

	lines := splitLines(data)
	require.Len(t, lines, 3, "one header row plus two data rows")
	assert.Contains(t, string(lines[0]), "eventType")
}

func TestConsoleOutput(t *testing.T) {
	out := &ConsoleOutput{}
	assert.NoError(t, Publish(out, TopicFeeComputed, FeeComputedEvent{
		BaseEvent: BaseEvent{Timestamp: time.Now().Unix(), EventType: TopicFeeComputed},
		Total:     114.0,
		Currency:  "LKR",
	}))
	assert.NoError(t, out.Close())
}

func TestGetSchemaKnownTopics(t *testing.T) {
	for _, topic := range []string{TopicLocationChanged, TopicAddressResolved, TopicFeeComputed} {
		sc, err := GetSchema(topic)
		require.NoError(t, err, topic)
		assert.NotNil(t, sc)
	}

	_, err := GetSchema("unknown_events")
	assert.Error(t, err)
}

func TestEventWithoutTimestampRejected(t *testing.T) {
	out := NewJSONOutput(t.TempDir(), "geo_events")
	defer out.Close()

	err := out.WriteMessage(TopicLocationChanged, []byte(`{"eventType": "x"}`))
	assert.Error(t, err)
}
