package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sweeney/thermostat/internal/api"
	"github.com/sweeney/thermostat/internal/device"
)

// CommandSink receives commands decoded from the command topic.
type CommandSink interface {
	Submit(cmd device.Command)
}

// RealClient talks to an actual MQTT broker. Messages published while
// disconnected are queued in a bounded outbox and replayed on reconnect.
type RealClient struct {
	client paho.Client

	mu      sync.Mutex
	pending *outbox

	token string
	sink  CommandSink
}

// NewRealClient connects to the broker. If sink is non-nil the command
// topic is subscribed and decoded commands (with a matching token, when
// one is configured) are handed to it.
func NewRealClient(broker, token string, sink CommandSink) (*RealClient, error) {
	c := &RealClient{
		pending: newOutbox(64),
		token:   token,
		sink:    sink,
	}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("thermostat").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(c.onConnect)

	c.client = paho.NewClient(opts)
	tok := c.client.Connect()
	if !tok.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	return c, nil
}

func (c *RealClient) onConnect(client paho.Client) {
	if c.sink != nil {
		tok := client.Subscribe(TopicCommand, 1, c.onCommand)
		if tok.WaitTimeout(5*time.Second) && tok.Error() != nil {
			log.Printf("mqtt: subscribe %s: %v", TopicCommand, tok.Error())
		}
	}

	c.mu.Lock()
	queued := c.pending.drainAll()
	c.mu.Unlock()
	if len(queued) > 0 {
		log.Printf("mqtt: replaying %d queued messages", len(queued))
	}
	for _, m := range queued {
		client.Publish(m.topic, m.qos, m.retained, m.payload)
	}
}

func (c *RealClient) onCommand(_ paho.Client, msg paho.Message) {
	var env CommandEnvelope
	if err := json.Unmarshal(msg.Payload(), &env); err != nil {
		log.Printf("mqtt: bad command payload: %v", err)
		return
	}
	if c.token != "" && env.Token != c.token {
		// Rejected with no state mutation.
		log.Printf("mqtt: command rejected: bad token")
		return
	}

	cmd, err := api.ToDevice(api.Command{
		Action:  env.Action,
		Delta:   env.Delta,
		Level:   env.Level,
		Name:    env.Name,
		Secret:  env.Secret,
		Enabled: env.Enabled,
	})
	if err != nil {
		log.Printf("mqtt: command rejected: %v", err)
		return
	}
	c.sink.Submit(cmd)
}

// PublishTelemetry sends a telemetry snapshot.
// QoS 0, retained so late subscribers see the last known state.
func (c *RealClient) PublishTelemetry(payload []byte) error {
	return c.publish(TopicTelemetry, 0, true, payload)
}

// PublishSystem sends a system lifecycle event.
// QoS 1 (at-least-once) — shutdown events must make it out.
func (c *RealClient) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	return c.publish(TopicSystem, 1, event.Retained, payload)
}

func (c *RealClient) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !c.client.IsConnected() {
		c.mu.Lock()
		c.pending.push(queuedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
		c.mu.Unlock()
		return nil
	}

	tok := c.client.Publish(topic, qos, retained, payload)
	if !tok.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("publish timeout")
	}
	if err := tok.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// IsConnected reports the broker connection state.
func (c *RealClient) IsConnected() bool {
	return c.client.IsConnected()
}

// Close disconnects from the broker.
func (c *RealClient) Close() error {
	c.client.Disconnect(1000) // 1 second timeout
	return nil
}
