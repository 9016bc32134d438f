package models

import "time"

// Message is immutable once fetched. Sender and recipient form an unordered
// pair for conversation grouping.
type Message struct {
	ID          uint   `json:"id"`
	SenderID    uint   `json:"senderId"`
	RecipientID uint   `json:"recipientId"`
	Text        string `json:"message"`
	CreatedAt   string `json:"createdAt"`
}

// CreatedTime parses the wire timestamp. A malformed value reports ok=false
// and loses every timestamp comparison instead of erroring.
func (m Message) CreatedTime() (time.Time, bool) {
	return ParseTime(m.CreatedAt)
}
