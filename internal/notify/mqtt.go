package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/playmo/smartdns-api/internal/models"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	eventQoS       = 1
)

type MQTTConfig struct {
	Broker      string
	ClientID    string
	TopicPrefix string
}

type MQTTPublisher struct {
	client pahomqtt.Client
	prefix string
}

func ConnectMQTT(cfg MQTTConfig) (*MQTTPublisher, error) {
	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		log.Warn("MQTT connection lost", "error", err)
	})

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connecting to MQTT broker %s: timeout after %v", cfg.Broker, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connecting to MQTT broker %s: %w", cfg.Broker, err)
	}

	return &MQTTPublisher{client: client, prefix: cfg.TopicPrefix}, nil
}

// Topic is <prefix>/events/<event type>.
func (p *MQTTPublisher) Topic(eventType string) string {
	return p.prefix + "/events/" + eventType
}

func (p *MQTTPublisher) Publish(event models.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Warn("Failed to encode event", "type", event.Type, "error", err)
		return
	}

	topic := p.Topic(event.Type)
	token := p.client.Publish(topic, eventQoS, false, payload)
	go func() {
		if !token.WaitTimeout(publishTimeout) {
			log.Warn("MQTT publish timed out", "topic", topic)
			return
		}
		if err := token.Error(); err != nil {
			log.Warn("MQTT publish failed", "topic", topic, "error", err)
		}
	}()
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}
