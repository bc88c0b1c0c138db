package link

import (
	"fmt"
	"io"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const mqttConnectTimeout = 5 * time.Second

// MQTTTransport bridges the line protocol over a broker: telemetry lines
// arrive on one topic, command lines go out on another, one line per
// message.
type MQTTTransport struct {
	client   mqtt.Client
	cmdTopic string

	in     chan string
	closed chan struct{}
	once   sync.Once
}

func OpenMQTT(brokerURL, clientID, telemetryTopic, commandTopic string) (*MQTTTransport, error) {
	t := &MQTTTransport{
		cmdTopic: commandTopic,
		in:       make(chan string, 64),
		closed:   make(chan struct{}),
	}

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttConnectTimeout)
	t.client = mqtt.NewClient(opts)

	if tok := t.client.Connect(); tok.Wait() && tok.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", brokerURL, tok.Error())
	}
	if tok := t.client.Subscribe(telemetryTopic, 1, t.onMessage); tok.Wait() && tok.Error() != nil {
		t.client.Disconnect(250)
		return nil, fmt.Errorf("mqtt subscribe %s: %w", telemetryTopic, tok.Error())
	}
	return t, nil
}

func (t *MQTTTransport) onMessage(_ mqtt.Client, msg mqtt.Message) {
	line := string(msg.Payload())
	for {
		select {
		case t.in <- line:
			return
		default:
			// Reader is behind; evict the oldest line rather than back up
			// the broker callback.
			select {
			case <-t.in:
			default:
			}
		}
	}
}

func (t *MQTTTransport) ReadLine() (string, error) {
	select {
	case line := <-t.in:
		return line, nil
	case <-t.closed:
		return "", io.EOF
	}
}

func (t *MQTTTransport) WriteLine(line string) error {
	tok := t.client.Publish(t.cmdTopic, 1, false, line)
	tok.Wait()
	return tok.Error()
}

func (t *MQTTTransport) Close() error {
	t.once.Do(func() {
		close(t.closed)
		t.client.Disconnect(250)
	})
	return nil
}
