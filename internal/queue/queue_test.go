package queue

import (
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	key string
	msg amqp.Publishing
}

type fakePublisher struct {
	sent []published
	err  error
}

func (f *fakePublisher) Publish(_, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{key: key, msg: msg})
	return nil
}

type fakeDeclarer struct {
	declared map[string]amqp.Table
	failOn   string
}

func (f *fakeDeclarer) QueueDeclare(name string, _, _, _, _ bool, args amqp.Table) (amqp.Queue, error) {
	if name == f.failOn {
		return amqp.Queue{}, errors.New("declare failed")
	}
	if f.declared == nil {
		f.declared = map[string]amqp.Table{}
	}
	f.declared[name] = args
	return amqp.Queue{Name: name}, nil
}

type fakeAck struct {
	acked   int
	nacked  int
	requeue bool
}

func (a *fakeAck) Ack(uint64, bool) error { a.acked++; return nil }
func (a *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked++
	a.requeue = requeue
	return nil
}
func (a *fakeAck) Reject(uint64, bool) error { return nil }

func delivery(ack *fakeAck, retries any) amqp.Delivery {
	d := amqp.Delivery{Acknowledger: ack, Body: []byte(`{"export_id":"x"}`), ContentType: "application/json"}
	if retries != nil {
		d.Headers = amqp.Table{"x-retries": retries}
	}
	return d
}

func TestSetupQueues(t *testing.T) {
	d := &fakeDeclarer{}
	require.NoError(t, SetupQueues(d, []string{ExportQueue}))

	assert.Contains(t, d.declared, "export_queue")
	assert.Contains(t, d.declared, "export_queue_dlq")
	retryArgs := d.declared["export_queue_retry"]
	require.NotNil(t, retryArgs)
	assert.Equal(t, int32(10000), retryArgs["x-message-ttl"])
	assert.Equal(t, "export_queue", retryArgs["x-dead-letter-routing-key"])

	err := SetupQueues(&fakeDeclarer{failOn: "export_queue_retry"}, []string{ExportQueue})
	assert.Error(t, err)
}

func TestPublishFIFO(t *testing.T) {
	p := &fakePublisher{}
	require.NoError(t, PublishFIFO(p, ExportQueue, []byte(`{"export_id":"a"}`)))
	require.Len(t, p.sent, 1)
	assert.Equal(t, ExportQueue, p.sent[0].key)
	assert.Equal(t, amqp.Persistent, p.sent[0].msg.DeliveryMode)

	p.err = errors.New("closed")
	assert.Error(t, PublishFIFO(p, ExportQueue, nil))
}

func TestHandleProcessingError(t *testing.T) {
	tests := []struct {
		name        string
		retries     any
		procErr     error
		wantQueue   string
		wantRetries any
	}{
		{name: "first failure", retries: nil, procErr: errors.New("db down"), wantQueue: "export_queue_retry", wantRetries: int32(1)},
		{name: "counts up", retries: int32(4), procErr: errors.New("db down"), wantQueue: "export_queue_retry", wantRetries: int32(5)},
		{name: "int64 header", retries: int64(2), procErr: errors.New("db down"), wantQueue: "export_queue_retry", wantRetries: int32(3)},
		{name: "exhausted", retries: int32(MaxRetries), procErr: errors.New("db down"), wantQueue: "export_queue_dlq", wantRetries: int32(MaxRetries)},
		{name: "permanent", retries: nil, procErr: ErrPermanent, wantQueue: "export_queue_dlq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePublisher{}
			ack := &fakeAck{}
			HandleProcessingError(p, delivery(ack, tt.retries), ExportQueue, tt.procErr)

			require.Len(t, p.sent, 1)
			assert.Equal(t, tt.wantQueue, p.sent[0].key)
			assert.Equal(t, tt.wantRetries, p.sent[0].msg.Headers["x-retries"])
			assert.Equal(t, 1, ack.acked)
			assert.Zero(t, ack.nacked)
		})
	}
}

func TestHandleProcessingError_PublishFails(t *testing.T) {
	p := &fakePublisher{err: errors.New("channel closed")}
	ack := &fakeAck{}
	HandleProcessingError(p, delivery(ack, nil), ExportQueue, errors.New("boom"))

	assert.Zero(t, ack.acked)
	assert.Equal(t, 1, ack.nacked)
	assert.True(t, ack.requeue)
}
