package domain

// Category is a node of the public category tree. The admin API works with the
// flat form (ParentID set, Children empty).
type Category struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	ParentID *int64     `json:"parentId,omitempty"`
	Children []Category `json:"children,omitempty"`
}
