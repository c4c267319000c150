package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisherWritesKeyedJSON(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(w)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, p.Publish(context.Background(), Event{Type: PostLiked, PostID: "p1", UserID: "u1", At: at}))
	require.Len(t, w.written, 1)
	assert.Equal(t, "p1", string(w.written[0].Key))

	var got Event
	require.NoError(t, json.Unmarshal(w.written[0].Value, &got))
	assert.Equal(t, PostLiked, got.Type)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, at.Equal(got.At))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherReturnsWriteError(t *testing.T) {
	p := NewKafkaPublisherWithWriter(&fakeWriter{err: errors.New("broker down")})
	err := p.Publish(context.Background(), Event{Type: PostCreated, PostID: "p1"})
	assert.EqualError(t, err, "broker down")
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	require.NoError(t, r.Publish(context.Background(), Event{Type: PostCreated}))
	require.NoError(t, r.Publish(context.Background(), Event{Type: PostDeleted}))
	assert.Equal(t, []string{PostCreated, PostDeleted}, r.Types())

	r.ShouldFail = true
	assert.Error(t, r.Publish(context.Background(), Event{Type: PostLiked}))
	assert.Len(t, r.Events(), 2)
}
