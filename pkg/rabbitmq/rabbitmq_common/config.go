package rabbitmq_common

import "fmt"

// Config - общие настройки подключения к RabbitMQ.
type Config struct {
	URL string
}

func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("rabbitmq: URL is required")
	}
	return nil
}
