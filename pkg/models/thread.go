package models

// Thread is a platform's native thread address
type Thread struct {
	SpaceName  string // e.g. spaces/AAAA or chats/-1001234
	ThreadName string // optional sub-thread, arbitrary bytes
	IsDM       bool
}
