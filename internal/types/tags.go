package types

// TagInfo represents a tag with the number of notes carrying it.
type TagInfo struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
