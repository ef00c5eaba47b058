package models

import "time"

// Subscription is a desired webhook registration. Name is unique within a
// desired set and is the key used to find the live registration.
type Subscription struct {
	Name      string `yaml:"name"`
	Resource  string `yaml:"resource"`
	Event     string `yaml:"event"`
	Filter    string `yaml:"filter,omitempty"`
	TargetURL string `yaml:"target_url,omitempty"`
}

// WebhookRecord is a webhook registration as reported by the remote registry
type WebhookRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Resource  string    `json:"resource"`
	Event     string    `json:"event"`
	Filter    string    `json:"filter,omitempty"`
	TargetURL string    `json:"targetUrl"`
	Status    string    `json:"status,omitempty"`
	Created   time.Time `json:"created,omitempty"`
}
