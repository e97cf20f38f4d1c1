package model

// User is the local directory record kept fresh by the kafka worker; it
// exists so notification titles can name senders without a remote call.
type User struct {
	ID        string `db:"id" json:"id"`
	Nickname  string `db:"nickname" json:"nickname"`
	AvatarURL string `db:"avatar_url" json:"avatar_url"`
}

// UserUpdatedEvent is the databus payload for user-profile changes.
type UserUpdatedEvent struct {
	UserID    string `json:"user_id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatar_url"`
}
