// Package platform delivers desktop notifications through the host's
// native notification service.
package platform

// AppName is reported to the notification service as the sender.
const AppName = "Pixler"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath is an image shown next to the message where supported.
	IconPath string
	// TimeoutMS is how long the notification stays up. Zero uses 5000.
	TimeoutMS int32
}

func (o Options) timeout() int32 {
	if o.TimeoutMS <= 0 {
		return 5000
	}
	return o.TimeoutMS
}
