package lightbox

import (
	"github.com/kellydunn/go-opc"
	"github.com/pkg/errors"
)

/*
OPCDisplay pushes frames to an Open Pixel Control server, such as a
fadecandy board or an openpixelcontrol simulator. Each frame becomes one
message on the configured channel.
*/
type OPCDisplay struct {
	client  *opc.Client
	channel uint8
}

// DialOPC connects to an OPC server, eg "localhost:7890". Channel 0
// broadcasts to every strand the server drives.
func DialOPC(addr string, channel uint8) (*OPCDisplay, error) {
	c := opc.NewClient()
	if err := c.Connect("tcp", addr); err != nil {
		return nil, errors.Wrapf(err, "connect opc server %s", addr)
	}
	return &OPCDisplay{client: c, channel: channel}, nil
}

// Send publishes one frame.
func (d *OPCDisplay) Send(pix []byte) error {
	m := opc.NewMessage(d.channel)
	m.SetLength(uint16(len(pix)))
	for i := 0; i+2 < len(pix); i += 3 {
		m.SetPixelColor(i/3, pix[i], pix[i+1], pix[i+2])
	}
	if err := d.client.Send(m); err != nil {
		return errors.Wrap(err, "send opc message")
	}
	return nil
}

func (d *OPCDisplay) Close() error {
	return nil
}
