package schema

// UserInviteTable represents the 'users.invite' table
type UserInviteTable struct {
	Table      string
	ID         string
	Email      string
	Token      string
	Role       string
	ExpiresAt  string
	RedeemedAt string
	CreatedAt  string
}

// UserInvite is the schema definition for users.invite
var UserInvite = UserInviteTable{
	Table:      "users.invite",
	ID:         "id",
	Email:      "email",
	Token:      "token",
	Role:       "role",
	ExpiresAt:  "expiresat",
	RedeemedAt: "redeemedat",
	CreatedAt:  "createdat",
}
