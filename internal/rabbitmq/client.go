package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/GoArmGo/PortfolioApp/internal/config"
	"github.com/GoArmGo/PortfolioApp/internal/messaging/payloads"
)

// Client представляет собой клиент RabbitMQ для очереди почтовых заданий.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	cfg     *config.Config
}

// NewClient создает и инициализирует новый клиент RabbitMQ
func NewClient(cfg *config.Config) (*Client, error) {
	client := &Client{cfg: cfg}

	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}
	client.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %v", err)
	}
	client.channel = ch

	// Объявление очереди — идемпотентная операция: очередь будет создана,
	// если ее нет, и ничего не произойдет, если она уже существует.
	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName, // name
		true,                           // durable - очередь сохраняется при перезапуске RabbitMQ
		false,                          // delete when unused
		false,                          // exclusive
		false,                          // no-wait
		nil,                            // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare a queue: %v", err)
	}
	client.queue = q
	log.Printf("Queue '%s' declared successfully. Messages in queue: %d", q.Name, q.Messages)

	return client, nil
}

// Close закрывает соединение и канал RabbitMQ
func (c *Client) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			log.Printf("Error closing RabbitMQ channel: %v", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			log.Printf("Error closing RabbitMQ connection: %v", err)
		}
	}
}

// PublishResetEmail публикует задание на отправку письма сброса пароля.
// Соответствует интерфейсу ports.ResetEmailPublisher.
func (c *Client) PublishResetEmail(ctx context.Context, payload payloads.ResetEmailPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}
	return nil
}

// StartConsumingResetEmails начинает потребление заданий из очереди.
// Реализует интерфейс ports.ResetEmailConsumer.
func (c *Client) StartConsumingResetEmails(ctx context.Context, handler func(context.Context, payloads.ResetEmailPayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name, // queue
		"",           // consumer
		false,        // auto-ack (подтверждаем вручную)
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	log.Printf("Consumer registered for queue '%s'. Waiting for messages...", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					log.Println("RabbitMQ channel closed, stopping consumer.")
					return
				}

				var payload payloads.ResetEmailPayload
				if err := json.Unmarshal(msg.Body, &payload); err != nil {
					log.Printf("Error unmarshalling message: %v, body: %s", err, string(msg.Body))
					// Плохой формат сообщения: отклоняем без возврата в очередь,
					// чтобы не застрять в бесконечном цикле ошибок.
					if err := msg.Nack(false, false); err != nil {
						log.Printf("Error NACKing message after unmarshal failure: %v", err)
					}
					continue
				}

				if err := handler(ctx, payload); err != nil {
					log.Printf("Error processing message: %v", err)
					// Обработка не удалась — возвращаем сообщение в очередь (requeue = true)
					if err := msg.Nack(false, true); err != nil {
						log.Printf("Error NACKing message after processing failure: %v", err)
					}
				} else {
					if err := msg.Ack(false); err != nil {
						log.Printf("Error ACKing message: %v", err)
					}
				}
			case <-ctx.Done():
				log.Println("Context cancelled, stopping RabbitMQ consumer.")
				return
			}
		}
	}()

	return nil
}
