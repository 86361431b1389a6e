package models

// Customer is a registered shop member. PasswordHash and Salt never leave
// the repository layer in API responses.
type Customer struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Account      string `json:"account"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
	Salt         string `json:"-"`
}

// ProfileUpdate carries the optional fields of a profile edit. Nil means
// "leave unchanged".
type ProfileUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}
