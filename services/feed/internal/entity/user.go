package entity

// Identity is what the bearer credential resolves to.
type Identity struct {
	UserID string
	Email  string
}

type AppUser struct {
	ID          string
	Email       string
	Username    string
	DisplayName string
	Avatar      string
}
