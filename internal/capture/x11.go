package capture

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

type x11Backend struct{}

type x11Conn struct {
	conn   *xgb.Conn
	setup  *xproto.SetupInfo
	screen *xproto.ScreenInfo
}

func dial() (*x11Conn, error) {
	if os.Getenv("DISPLAY") == "" {
		return nil, ErrNoDisplay
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDisplay, err)
	}
	setup := xproto.Setup(conn)
	if setup == nil {
		conn.Close()
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return nil, fmt.Errorf("xproto screen unavailable")
	}
	return &x11Conn{conn: conn, setup: setup, screen: screen}, nil
}

func (x11Backend) Grab(rect image.Rectangle) (*image.RGBA, error) {
	x, err := dial()
	if err != nil {
		return nil, err
	}
	defer x.conn.Close()

	rect = rect.Intersect(image.Rect(0, 0, int(x.screen.WidthInPixels), int(x.screen.HeightInPixels)))
	if rect.Empty() {
		return image.NewRGBA(image.Rectangle{}), nil
	}
	reply, err := xproto.GetImage(x.conn, xproto.ImageFormatZPixmap, xproto.Drawable(x.screen.Root),
		int16(rect.Min.X), int16(rect.Min.Y), uint16(rect.Dx()), uint16(rect.Dy()), ^uint32(0)).Reply()
	if err != nil {
		return nil, fmt.Errorf("screen pixels: %w", err)
	}
	return decodeZPixmap(x.setup.PixmapFormats, reply.Depth, reply.Data, rect.Dx(), rect.Dy())
}

func (x11Backend) Pointer() (image.Point, error) {
	x, err := dial()
	if err != nil {
		return image.Point{}, err
	}
	defer x.conn.Close()
	reply, err := xproto.QueryPointer(x.conn, x.screen.Root).Reply()
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(int(reply.RootX), int(reply.RootY)), nil
}

func (x11Backend) Monitors() ([]MonitorInfo, error) {
	x, err := dial()
	if err != nil {
		return nil, err
	}
	defer x.conn.Close()

	root := x.screen.Root
	if err := randr.Init(x.conn); err != nil {
		// Without RandR the whole root window is the only monitor.
		return []MonitorInfo{{
			Name:    "screen",
			Rect:    image.Rect(0, 0, int(x.screen.WidthInPixels), int(x.screen.HeightInPixels)),
			Primary: true,
		}}, nil
	}
	res, err := randr.GetScreenResources(x.conn, root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	primaryOutput := randr.Output(0)
	if primary, err := randr.GetOutputPrimary(x.conn, root).Reply(); err == nil {
		primaryOutput = primary.Output
	}

	var monitors []MonitorInfo
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(x.conn, output, res.ConfigTimestamp).Reply()
		if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(x.conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		monitors = append(monitors, MonitorInfo{
			Index:   len(monitors),
			Name:    strings.TrimSpace(string(info.Name)),
			Rect:    image.Rect(int(crtc.X), int(crtc.Y), int(crtc.X)+int(crtc.Width), int(crtc.Y)+int(crtc.Height)),
			Primary: output == primaryOutput,
		})
	}
	if len(monitors) == 0 {
		return nil, errNoMonitors
	}
	return monitors, nil
}
