package topics

// Renderer turns raw topic content into terminal output. The format
// argument is the file extension, including the dot.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer returns content untouched.
type PlainRenderer struct{}

// Render implements Renderer.
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
