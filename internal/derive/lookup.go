package derive

import (
	"fmt"

	"dating-admin-console/internal/models"
)

// PlaceholderPhotoURL stands in when a referenced user has no photo or no
// record in the current snapshot.
const PlaceholderPhotoURL = "https://via.placeholder.com/40"

// UserIndex resolves foreign-key ids against one user snapshot. A referenced
// id with no matching record resolves to placeholder display values; it is
// never surfaced as an error.
type UserIndex struct {
	byID map[uint]models.User
}

func NewUserIndex(users []models.User) *UserIndex {
	byID := make(map[uint]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	return &UserIndex{byID: byID}
}

func (idx *UserIndex) Resolve(id uint) (models.User, bool) {
	user, ok := idx.byID[id]
	return user, ok
}

// DisplayName returns the user's name, or the synthetic "User {id}" label
// when the snapshot has no matching record.
func (idx *UserIndex) DisplayName(id uint) string {
	if user, ok := idx.byID[id]; ok {
		return user.Name
	}
	return fmt.Sprintf("User %d", id)
}

func (idx *UserIndex) PhotoURL(id uint) string {
	if user, ok := idx.byID[id]; ok && user.Photo != "" {
		return user.Photo
	}
	return PlaceholderPhotoURL
}
