package schema

// ShareLinkTable represents the 'core.sharelink' table
type ShareLinkTable struct {
	Table        string
	ID           string
	Token        string
	ResourceType string
	ResourceID   string
	ExpiresAt    string
	CreatedAt    string
}

// ShareLink is the schema definition for core.sharelink
var ShareLink = ShareLinkTable{
	Table:        "core.sharelink",
	ID:           "id",
	Token:        "token",
	ResourceType: "resourcetype",
	ResourceID:   "resourceid",
	ExpiresAt:    "expiresat",
	CreatedAt:    "createdat",
}
