package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dating-admin-console/internal/models"
)

func msg(id, sender, recipient uint, createdAt string) models.Message {
	return models.Message{
		ID:          id,
		SenderID:    sender,
		RecipientID: recipient,
		Text:        "hi",
		CreatedAt:   createdAt,
	}
}

func TestPairKey_Canonical(t *testing.T) {
	assert.Equal(t, "1-2", PairKey(1, 2))
	assert.Equal(t, "1-2", PairKey(2, 1))
	assert.Equal(t, "7-7", PairKey(7, 7))
}

func TestGroup_MergesBothDirections(t *testing.T) {
	messages := []models.Message{
		msg(1, 1, 2, "2024-01-01"),
		msg(2, 2, 1, "2024-01-03"),
		msg(3, 1, 3, "2024-01-02"),
	}

	conversations := Group(messages)
	require.Len(t, conversations, 2)

	assert.Equal(t, uint(1), conversations[0].User1ID)
	assert.Equal(t, uint(2), conversations[0].User2ID)
	assert.Equal(t, 2, conversations[0].Count)
	assert.Equal(t, "2024-01-03", conversations[0].LastMessage.CreatedAt)

	assert.Equal(t, uint(1), conversations[1].User1ID)
	assert.Equal(t, uint(3), conversations[1].User2ID)
	assert.Equal(t, 1, conversations[1].Count)
	assert.Equal(t, "2024-01-02", conversations[1].LastMessage.CreatedAt)
}

func TestGroup_Empty(t *testing.T) {
	assert.Empty(t, Group(nil))
	assert.Empty(t, Group([]models.Message{}))
}

func TestGroup_CountsPartitionInput(t *testing.T) {
	messages := []models.Message{
		msg(1, 1, 2, "2024-01-01"),
		msg(2, 3, 4, "2024-01-02"),
		msg(3, 2, 1, "2024-01-03"),
		msg(4, 4, 3, "2024-01-04"),
		msg(5, 1, 4, "2024-01-05"),
		msg(6, 2, 1, "2024-01-06"),
	}

	conversations := Group(messages)

	total := 0
	keys := make(map[string]bool)
	for _, conv := range conversations {
		total += conv.Count
		key := PairKey(conv.User1ID, conv.User2ID)
		assert.False(t, keys[key], "duplicate pair key %s", key)
		keys[key] = true
	}
	assert.Equal(t, len(messages), total)
}

func TestGroup_OrderInsensitive(t *testing.T) {
	// Strictly increasing timestamps so the chronologically-latest winner is
	// unambiguous under permutation.
	base := []models.Message{
		msg(1, 1, 2, "2024-01-01T10:00:00Z"),
		msg(2, 2, 1, "2024-01-01T11:00:00Z"),
		msg(3, 1, 3, "2024-01-01T12:00:00Z"),
		msg(4, 2, 1, "2024-01-01T13:00:00Z"),
	}

	permutations := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
		{1, 3, 0, 2},
	}

	type facts struct {
		count  int
		lastID uint
	}
	var want map[string]facts

	for _, perm := range permutations {
		shuffled := make([]models.Message, len(base))
		for i, j := range perm {
			shuffled[i] = base[j]
		}

		got := make(map[string]facts)
		for _, conv := range Group(shuffled) {
			got[PairKey(conv.User1ID, conv.User2ID)] = facts{conv.Count, conv.LastMessage.ID}
		}

		if want == nil {
			want = got
			continue
		}
		assert.Equal(t, want, got, "permutation %v", perm)
	}

	assert.Equal(t, facts{3, 4}, want["1-2"])
	assert.Equal(t, facts{1, 3}, want["1-3"])
}

func TestGroup_FirstSeenOrder(t *testing.T) {
	messages := []models.Message{
		msg(1, 5, 6, "2024-01-01"),
		msg(2, 1, 2, "2024-01-02"),
		msg(3, 6, 5, "2024-01-03"),
	}

	conversations := Group(messages)
	require.Len(t, conversations, 2)
	assert.Equal(t, "5-6", PairKey(conversations[0].User1ID, conversations[0].User2ID))
	assert.Equal(t, "1-2", PairKey(conversations[1].User1ID, conversations[1].User2ID))
}

func TestGroup_EqualTimestampsKeepFirst(t *testing.T) {
	messages := []models.Message{
		msg(1, 1, 2, "2024-01-01T10:00:00Z"),
		msg(2, 2, 1, "2024-01-01T10:00:00Z"),
	}

	conversations := Group(messages)
	require.Len(t, conversations, 1)
	assert.Equal(t, uint(1), conversations[0].LastMessage.ID)
}

func TestGroup_MalformedTimestampsKeepFirst(t *testing.T) {
	messages := []models.Message{
		msg(1, 1, 2, "not-a-date"),
		msg(2, 2, 1, "2024-01-05T10:00:00Z"),
		msg(3, 1, 2, "also bad"),
	}

	// Non-comparable timestamps never win, and never panic.
	conversations := Group(messages)
	require.Len(t, conversations, 1)
	assert.Equal(t, 3, conversations[0].Count)
	assert.Equal(t, uint(1), conversations[0].LastMessage.ID)
}

func TestThread_FiltersAndSortsAscending(t *testing.T) {
	messages := []models.Message{
		msg(1, 2, 1, "2024-01-03T10:00:00Z"),
		msg(2, 1, 3, "2024-01-01T10:00:00Z"),
		msg(3, 1, 2, "2024-01-01T10:00:00Z"),
		msg(4, 2, 1, "2024-01-02T10:00:00Z"),
	}

	thread := Thread(messages, 1, 2)
	require.Len(t, thread, 3)
	assert.Equal(t, uint(3), thread[0].ID)
	assert.Equal(t, uint(4), thread[1].ID)
	assert.Equal(t, uint(1), thread[2].ID)

	for i := 1; i < len(thread); i++ {
		prev, okPrev := thread[i-1].CreatedTime()
		cur, okCur := thread[i].CreatedTime()
		require.True(t, okPrev)
		require.True(t, okCur)
		assert.False(t, cur.Before(prev), "thread not sorted at %d", i)
	}
}

func TestThread_StableOnEqualTimestamps(t *testing.T) {
	messages := []models.Message{
		msg(1, 1, 2, "2024-01-01T10:00:00Z"),
		msg(2, 2, 1, "2024-01-01T10:00:00Z"),
		msg(3, 1, 2, "2024-01-01T10:00:00Z"),
	}

	thread := Thread(messages, 2, 1)
	require.Len(t, thread, 3)
	assert.Equal(t, uint(1), thread[0].ID)
	assert.Equal(t, uint(2), thread[1].ID)
	assert.Equal(t, uint(3), thread[2].ID)
}

func TestThread_Idempotent(t *testing.T) {
	messages := []models.Message{
		msg(1, 2, 1, "2024-01-02"),
		msg(2, 1, 2, "2024-01-01"),
	}

	first := Thread(messages, 1, 2)
	second := Thread(messages, 1, 2)
	assert.Equal(t, first, second)
}

func TestThread_NoMatches(t *testing.T) {
	messages := []models.Message{msg(1, 1, 2, "2024-01-01")}
	assert.Empty(t, Thread(messages, 3, 4))
}

func TestSearch_MatchesEitherParticipant(t *testing.T) {
	users := NewUserIndex([]models.User{
		{ID: 1, Name: "Alice"},
		{ID: 2, Name: "Bob"},
		{ID: 3, Name: "Carol"},
	})
	conversations := Group([]models.Message{
		msg(1, 1, 2, "2024-01-01"),
		msg(2, 2, 3, "2024-01-02"),
	})

	assert.Len(t, Search(conversations, "alice", users.DisplayName), 1)
	assert.Len(t, Search(conversations, "BOB", users.DisplayName), 2)
	assert.Empty(t, Search(conversations, "dave", users.DisplayName))
}

func TestSearch_EmptyQueryReturnsInput(t *testing.T) {
	users := NewUserIndex(nil)
	conversations := Group([]models.Message{msg(1, 1, 2, "2024-01-01")})

	result := Search(conversations, "", users.DisplayName)
	assert.Equal(t, conversations, result)
}

func TestSearch_MatchesPlaceholderNames(t *testing.T) {
	// Unresolvable participants still get the synthetic "User {id}" label,
	// so searching for it finds the conversation.
	users := NewUserIndex(nil)
	conversations := Group([]models.Message{msg(1, 41, 42, "2024-01-01")})

	assert.Len(t, Search(conversations, "user 42", users.DisplayName), 1)
}
