//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// User is an account created on first successful login. Users are never
// deleted by this service; records cascade from them at the DB level.
type User struct {
	ID                   int        `json:"id"                                db:"id"`
	Email                string     `json:"email"                             db:"email"`
	Name                 string     `json:"name"                              db:"name"`
	GoogleID             *string    `json:"google_id,omitempty"               db:"google_id"`
	PreferredValueTypeID *int       `json:"preferred_value_type_id,omitempty" db:"preferred_value_type_id"`
	InvitationCode       *string    `json:"invitation_code,omitempty"         db:"invitation_code"`
	CreatedAt            time.Time  `json:"created_at"                        db:"created_at"`
}
