package domain

import "time"

// Shop represents a merchant store on the hosting platform. One row is
// created lazily the first time a session token for the domain is seen.
type Shop struct {
	ID        string
	Domain    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
