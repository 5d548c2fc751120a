package schema

// AlbumTable represents the 'core.album' table
type AlbumTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Description string
	CreatedAt   string
}

// Album is the schema definition for core.album
var Album = AlbumTable{
	Table:       "core.album",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Description: "description",
	CreatedAt:   "createdat",
}
