package models

// Action is the payload carried by an interactive control through a
// platform's callback field
type Action struct {
	ID    string `json:"a"`
	Value string `json:"v,omitempty"` // empty means no value
}
