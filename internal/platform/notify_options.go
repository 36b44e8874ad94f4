package platform

import "time"

// DefaultAppName identifies the application to notification daemons.
const DefaultAppName = "ShineyPaint"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName defaults to DefaultAppName.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Timeout is how long the notification stays visible. Zero leaves it to
	// the platform.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}
