// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// User is the identity record shared by the auth backend and the session
// layer. Email is the unique key; a user is created on the first successful
// OAuth exchange and looked up by email afterwards.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"` // Avatar URL provided by the identity provider.
}

// Session is the transient wrapper around the signed-in user. It is owned
// exclusively by the session manager: rebuilt from the persisted store at
// startup, destroyed on sign-out, never partially stored.
type Session struct {
	User            *User `json:"user"`
	Loading         bool  `json:"loading"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}
