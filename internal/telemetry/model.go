package telemetry

import "time"

// Point is a single GPS fix reported by a device.
type Point struct {
	DeviceID  int64
	Time      time.Time
	Latitude  float64
	Longitude float64
}
