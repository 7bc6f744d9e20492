package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User ids are supplied by the caller (the storefront's auth provider),
// not generated by this service.
type User struct {
	ID        string    `bson:"_id" json:"_id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Photo     string    `bson:"photo" json:"photo"`
	Gender    string    `bson:"gender" json:"gender"`
	Role      string    `bson:"role" json:"role"`
	DOB       time.Time `bson:"dob" json:"dob"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Age derives the user's age from DOB at the given instant.
func (u User) Age(now time.Time) int {
	age := now.Year() - u.DOB.Year()
	if now.Month() < u.DOB.Month() ||
		(now.Month() == u.DOB.Month() && now.Day() < u.DOB.Day()) {
		age--
	}
	return age
}

type NewUserRequest struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Photo  string `json:"photo"`
	Gender string `json:"gender"`
	DOB    string `json:"dob"`
}
