package device

import "time"

// Device represents a provisioned tracker. The identifier and access token
// are chosen by the provisioner, not the server, and never change.
type Device struct {
	ID          int64
	AccessToken string
	SMSNumber   string
	Control1    *bool
	Control2    *bool
	Control3    *bool
	Control4    *bool
	CreatedAt   time.Time
}
