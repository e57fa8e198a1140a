package queue

import (
	"errors"

	"github.com/OFFIS-RIT/pedigree/backend/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPermanent marks failures that retrying cannot fix, e.g. malformed messages.
var ErrPermanent = errors.New("permanent failure")

func retriesOf(msg amqp.Delivery) int {
	switch v := msg.Headers["x-retries"].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// HandleProcessingError moves a failed delivery to the retry queue, or to the dead-letter queue
// once MaxRetries is reached or the error is permanent. The original delivery is acked after the
// copy is published and requeued if publishing fails.
func HandleProcessingError(ch Publisher, msg amqp.Delivery, queueName string, procErr error) {
	retries := retriesOf(msg)

	if retries >= MaxRetries || errors.Is(procErr, ErrPermanent) {
		dlqName := queueName + "_dlq"
		logger.Info("[Queue] Sending message to DLQ", "dlq", dlqName, "retries", retries)
		pubErr := ch.Publish("", dlqName, false, false, amqp.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Body,
			Headers:     msg.Headers,
		})
		if pubErr != nil {
			logger.Error("[Queue] Failed to publish to DLQ", "dlq", dlqName, "err", pubErr)
			_ = msg.Nack(false, true)
			return
		}
		_ = msg.Ack(false)
		return
	}

	retryName := queueName + "_retry"
	headers := amqp.Table{}
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers["x-retries"] = int32(retries + 1)

	pubErr := ch.Publish("", retryName, false, false, amqp.Publishing{
		ContentType:  msg.ContentType,
		Body:         msg.Body,
		Headers:      headers,
		DeliveryMode: amqp.Persistent,
	})
	if pubErr != nil {
		logger.Error("[Queue] Failed to publish to retry queue", "retry_queue", retryName, "err", pubErr)
		_ = msg.Nack(false, true)
		return
	}
	_ = msg.Ack(false)
}
