package models

// User is the persisted account record.
type User struct {
	ID           int64             `json:"-"`
	Username     string            `json:"username"`
	PasswordHash string            `json:"-"` // don’t expose hash
	Name         string            `json:"name"`
	Points       int               `json:"points"`
	Picks        map[string]string `json:"picks"` // matchup id -> selection
}

// PublicUser is what clients get to see of a User.
type PublicUser struct {
	Username string            `json:"username"`
	Name     string            `json:"name"`
	Points   int               `json:"points"`
	Picks    map[string]string `json:"picks"`
}

// Public drops hash material and internal bookkeeping.
func (u User) Public() PublicUser {
	picks := u.Picks
	if picks == nil {
		picks = map[string]string{}
	}
	return PublicUser{
		Username: u.Username,
		Name:     u.Name,
		Points:   u.Points,
		Picks:    picks,
	}
}
