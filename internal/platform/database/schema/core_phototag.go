package schema

// PhotoTagTable represents the 'core.phototag' join table
type PhotoTagTable struct {
	Table   string
	PhotoID string
	TagID   string
}

// PhotoTag is the schema definition for core.phototag
var PhotoTag = PhotoTagTable{
	Table:   "core.phototag",
	PhotoID: "photoid",
	TagID:   "tagid",
}
