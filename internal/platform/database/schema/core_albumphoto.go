package schema

// AlbumPhotoTable represents the 'core.albumphoto' join table
type AlbumPhotoTable struct {
	Table     string
	AlbumID   string
	PhotoID   string
	Position  string
	CreatedAt string
}

// AlbumPhoto is the schema definition for core.albumphoto
var AlbumPhoto = AlbumPhotoTable{
	Table:     "core.albumphoto",
	AlbumID:   "albumid",
	PhotoID:   "photoid",
	Position:  "position",
	CreatedAt: "createdat",
}
