package schema

// TagTable represents the 'core.tag' table
type TagTable struct {
	Table string
	ID    string
	Name  string
	Slug  string
}

// Tag is the schema definition for core.tag
var Tag = TagTable{
	Table: "core.tag",
	ID:    "id",
	Name:  "name",
	Slug:  "slug",
}
