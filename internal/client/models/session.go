package models

import "github.com/dmitrijs2005/localswap/internal/geo"

// Session is what survives a CLI restart: the bearer token, the user it
// belongs to and the last search location.
type Session struct {
	Token    string
	UserID   string
	Location geo.Point
}

func (s *Session) LoggedIn() bool {
	return s.Token != ""
}
