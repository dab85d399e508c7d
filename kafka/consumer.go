package kafka

import (
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
)

type Consumer struct {
	consumer   sarama.Consumer
	partitions []sarama.PartitionConsumer
	wg         sync.WaitGroup
}

func NewConsumer(brokers []string, retries int) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Return.Errors = true

	if retries < 1 {
		retries = 1
	}

	var err error
	for i := 1; i <= retries; i++ {
		var client sarama.Consumer
		client, err = sarama.NewConsumer(brokers, config)
		if err == nil {
			log.Println("Kafka consumer initialized")
			return NewConsumerFromSarama(client), nil
		}

		log.Printf("Waiting for Kafka consumer... (%d/%d) Error: %v", i, retries, err)
		if i < retries {
			time.Sleep(5 * time.Second)
		}
	}

	return nil, errors.Wrap(err, "failed to start kafka consumer")
}

func NewConsumerFromSarama(consumer sarama.Consumer) *Consumer {
	return &Consumer{consumer: consumer}
}

// Consume starts a goroutine feeding partition 0 of topic into handler until
// Close is called.
func (c *Consumer) Consume(topic string, handler func([]byte)) error {
	pc, err := c.consumer.ConsumePartition(topic, 0, sarama.OffsetNewest)
	if err != nil {
		return errors.Wrapf(err, "failed to consume topic %s", topic)
	}
	c.partitions = append(c.partitions, pc)

	log.Printf("Listening on topic %s ...", topic)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		messages, errs := pc.Messages(), pc.Errors()
		for messages != nil || errs != nil {
			select {
			case msg, ok := <-messages:
				if !ok {
					messages = nil
					continue
				}
				handler(msg.Value)
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				log.Printf("Kafka consumer error: %v", err)
			}
		}
	}()

	return nil
}

// Close stops every partition consumer and waits for the handlers to drain.
func (c *Consumer) Close() error {
	for _, pc := range c.partitions {
		pc.AsyncClose()
	}
	c.wg.Wait()
	return c.consumer.Close()
}
