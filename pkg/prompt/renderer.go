package prompt

// Renderer is the seam between the prompt engine and the template language.
// RenderString renders template content against a data mapping;
// DeclaredVariables reports the variable names the template reads, which the
// engine uses to validate caller-supplied context before rendering.
type Renderer interface {
	RenderString(template string, data map[string]any) (string, error)
	DeclaredVariables(template string) ([]string, error)
}
