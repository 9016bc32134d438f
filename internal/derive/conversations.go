package derive

import (
	"fmt"
	"sort"
	"strings"

	"dating-admin-console/internal/models"
)

// PairKey canonicalizes an unordered user-id pair so that both send
// directions land on the same conversation.
func PairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d-%d", a, b)
}

// Conversation is derived from the message snapshot on every fetch, never
// stored. User1ID is always the smaller id of the pair.
type Conversation struct {
	User1ID     uint           `json:"user1Id"`
	User2ID     uint           `json:"user2Id"`
	Count       int            `json:"count"`
	LastMessage models.Message `json:"lastMessage"`
}

// Group folds the message snapshot into one conversation per unordered
// participant pair in a single left-to-right pass. Output keeps first-seen
// pair order; callers sort downstream if they need another order. The stored
// last message is replaced only when both timestamps parse and the incoming
// one is strictly newer, so a malformed timestamp leaves the first message
// seen for the pair in place.
func Group(messages []models.Message) []Conversation {
	index := make(map[string]int, len(messages))
	conversations := make([]Conversation, 0)

	for _, msg := range messages {
		key := PairKey(msg.SenderID, msg.RecipientID)
		i, seen := index[key]
		if !seen {
			u1, u2 := msg.SenderID, msg.RecipientID
			if u1 > u2 {
				u1, u2 = u2, u1
			}
			index[key] = len(conversations)
			conversations = append(conversations, Conversation{
				User1ID:     u1,
				User2ID:     u2,
				Count:       1,
				LastMessage: msg,
			})
			continue
		}

		conversations[i].Count++
		incoming, okIncoming := msg.CreatedTime()
		current, okCurrent := conversations[i].LastMessage.CreatedTime()
		if okIncoming && okCurrent && incoming.After(current) {
			conversations[i].LastMessage = msg
		}
	}

	return conversations
}

// Thread returns the full message sequence between two users, either
// direction, sorted ascending by creation time. The sort is stable: equal or
// unparsable timestamps keep their snapshot order. Computed only when an
// operator opens a conversation, never precomputed for all pairs.
func Thread(messages []models.Message, user1ID, user2ID uint) []models.Message {
	key := PairKey(user1ID, user2ID)
	thread := make([]models.Message, 0)
	for _, msg := range messages {
		if PairKey(msg.SenderID, msg.RecipientID) == key {
			thread = append(thread, msg)
		}
	}

	sort.SliceStable(thread, func(i, j int) bool {
		ti, oki := thread[i].CreatedTime()
		tj, okj := thread[j].CreatedTime()
		if !oki || !okj {
			return false
		}
		return ti.Before(tj)
	})

	return thread
}

// Search filters already-grouped conversations by a case-insensitive
// substring match against either participant's resolved display name. An
// empty query returns the input unchanged.
func Search(conversations []Conversation, query string, nameOf func(uint) string) []Conversation {
	if query == "" {
		return conversations
	}

	q := strings.ToLower(query)
	matched := make([]Conversation, 0, len(conversations))
	for _, conv := range conversations {
		if strings.Contains(strings.ToLower(nameOf(conv.User1ID)), q) ||
			strings.Contains(strings.ToLower(nameOf(conv.User2ID)), q) {
			matched = append(matched, conv)
		}
	}
	return matched
}
