package mq

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the single topic exchange the services share. Publishers
// tag events with dotted routing keys (task.reminder_due) and consumers bind
// one durable queue per key.
const ExchangeName = "todo.events"

// dial opens a connection and a channel with the events exchange declared.
// The caller owns both and must close them.
func dial(url string) (*amqp091.Connection, *amqp091.Channel, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %q: %w", ExchangeName, err)
	}

	return conn, ch, nil
}
