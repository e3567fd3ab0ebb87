package doctree

// Section is one fragment of the document between separators.
type Section struct {
	Index int    `json:"index"` // Ordinal after empty sections are dropped
	Text  string `json:"text"`  // Trimmed raw text
}

// Heading is a heading discovered while rendering a section.
type Heading struct {
	ID    string `json:"id"`    // Slug of Title, unique within an outline
	Level int    `json:"level"` // 1-6
	Title string `json:"title"` // Display text with leading markers stripped
	Order int    `json:"order"` // Insertion sequence number
}

// NavNode is a heading projected into navigation form.
type NavNode struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Label    string     `json:"label"` // Display text (ordinal prefix stripped for children)
	Href     string     `json:"href"`
	Group    bool       `json:"group,omitempty"` // Rendered as a group of children
	Active   bool       `json:"active,omitempty"`
	Children []*NavNode `json:"children,omitempty"`
}

// RenderedSection is the output of a render back-end for one section.
type RenderedSection struct {
	Index int    `json:"index"`
	HTML  string `json:"html"`
}
