package topics

// Renderer formats topic content for display. ext is the topic file
// extension including the dot.
type Renderer interface {
	Render(content string, ext string) string
}

// PlainRenderer prints content unchanged
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}
