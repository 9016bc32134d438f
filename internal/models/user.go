package models

// Gender values as delivered by the backend.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// User is the identity record served by the remote admin API. Ids are
// assigned by the backend and never invented or mutated by the console;
// every downstream lookup resolves against the most recent fetched snapshot.
type User struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Gender     string   `json:"gender"`
	Age        int      `json:"age"`
	Religion   string   `json:"religion,omitempty"`
	Occupation string   `json:"occupation,omitempty"`
	Education  string   `json:"education,omitempty"`
	City       string   `json:"city,omitempty"`
	Bio        string   `json:"bio,omitempty"`
	Interests  []string `json:"interests,omitempty"`
	Photo      string   `json:"photo,omitempty"`
	Blocked    bool     `json:"blocked"`
	CreatedAt  string   `json:"createdAt,omitempty"`
}
