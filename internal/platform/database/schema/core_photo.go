package schema

// PhotoTable represents the 'core.photo' table
type PhotoTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Description string
	StorageKey  string
	MimeType    string
	Width       string
	Height      string
	Visibility  string
	SizesJSON   string
	CreatedAt   string
}

// Photo is the schema definition for core.photo
var Photo = PhotoTable{
	Table:       "core.photo",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Description: "description",
	StorageKey:  "storagekey",
	MimeType:    "mimetype",
	Width:       "width",
	Height:      "height",
	Visibility:  "visibility",
	SizesJSON:   "sizesjson",
	CreatedAt:   "createdat",
}

// Columns returns all standard column names
func (t PhotoTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Description, t.StorageKey, t.MimeType, t.Width, t.Height, t.Visibility, t.SizesJSON, t.CreatedAt,
	}
}
