package kafka

import (
	"encoding/json"
	"log"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

type Producer struct {
	producer sarama.SyncProducer
}

// NewProducer dials the brokers, retrying while kafka is still coming up.
func NewProducer(brokers []string, retries int) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	if retries < 1 {
		retries = 1
	}

	var err error
	for i := 1; i <= retries; i++ {
		var producer sarama.SyncProducer
		producer, err = sarama.NewSyncProducer(brokers, config)
		if err == nil {
			log.Println("Kafka producer initialized")
			return NewProducerFromSarama(producer), nil
		}

		log.Printf("Waiting for Kafka... (%d/%d) Error: %v", i, retries, err)
		if i < retries {
			time.Sleep(5 * time.Second)
		}
	}

	return nil, errors.Wrap(err, "failed to start kafka producer")
}

func NewProducerFromSarama(producer sarama.SyncProducer) *Producer {
	return &Producer{producer: producer}
}

func (p *Producer) PublishOrderCreated(event OrderCreatedEvent) {
	p.publish(TopicOrderCreated, event)
}

func (p *Producer) PublishStockUpdated(event StockUpdatedEvent) {
	p.publish(TopicStockUpdated, event)
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

// publish is fire-and-forget; failures are only logged.
func (p *Producer) publish(topic string, data interface{}) {
	payload, err := json.Marshal(envelope{EventType: topic, Data: data})
	if err != nil {
		log.Printf("Failed to marshal event: %v", err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Value:     sarama.ByteEncoder(payload),
		Timestamp: time.Now(),
	}

	if _, _, err = p.producer.SendMessage(msg); err != nil {
		log.Printf("Failed to send Kafka message: %v", err)
		return
	}

	log.Printf("Published %s: %s", topic, payload)
}
