package models

// Match is read-only and display-only. The participant pair is directed as
// delivered by the backend and must not be canonicalized.
type Match struct {
	ID        uint   `json:"id"`
	User1ID   uint   `json:"user1Id"`
	User2ID   uint   `json:"user2Id"`
	CreatedAt string `json:"createdAt"`
}

// Swipe is a raw like/pass record.
type Swipe struct {
	ID        uint   `json:"id"`
	SwiperID  uint   `json:"swiperId"`
	TargetID  uint   `json:"targetId"`
	Liked     bool   `json:"liked"`
	CreatedAt string `json:"createdAt"`
}
