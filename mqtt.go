package lightbox

import (
	"encoding/binary"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

/*
MQTTDisplay publishes frames to an MQTT topic for strand receivers that
subscribe to a broker instead of listening on a socket. The payload is a
little-endian uint16 pixel count followed by packed RGB bytes.
*/
type MQTTDisplay struct {
	client mqtt.Client
	topic  string
	qos    byte
}

// MQTTOptions configures the broker connection and the topic frames are
// published on.
type MQTTOptions struct {
	URL      string
	ClientID string
	Username string
	Password string
	Topic    string
	QOS      byte
}

// DialMQTT connects to the broker and returns a publishing display.
func DialMQTT(o MQTTOptions) (*MQTTDisplay, error) {
	if o.ClientID == "" {
		o.ClientID = "lightbox"
	}
	opts := mqtt.NewClientOptions().
		AddBroker(o.URL).
		SetClientID(o.ClientID).
		SetUsername(o.Username).
		SetPassword(o.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, errors.Wrapf(token.Error(), "connect mqtt broker %s", o.URL)
	}
	return &MQTTDisplay{client: client, topic: o.Topic, qos: o.QOS}, nil
}

// Send publishes one frame and waits for the broker to take it.
func (d *MQTTDisplay) Send(pix []byte) error {
	payload := make([]byte, 2, len(pix)+2)
	binary.LittleEndian.PutUint16(payload, uint16(len(pix)/3))
	payload = append(payload, pix...)
	token := d.client.Publish(d.topic, d.qos, false, payload)
	if token.Wait() && token.Error() != nil {
		return errors.Wrap(token.Error(), "publish frame")
	}
	return nil
}

// Close disconnects from the broker.
func (d *MQTTDisplay) Close() error {
	d.client.Disconnect(250)
	return nil
}
