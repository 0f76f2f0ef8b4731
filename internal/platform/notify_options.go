package platform

import "time"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender to the notification service.
	AppName string
	// IconPath, when non-empty, points to an image shown with the
	// notification where the platform supports it.
	IconPath string
	// Timeout is how long the notification stays visible. Zero leaves the
	// choice to the platform.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return "Sketchpad"
	}
	return o.AppName
}
