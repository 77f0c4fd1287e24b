// Package prompt assembles full few-shot prompts from a document template, a
// caller context, and records formatted by a shot.Formatter. The template
// engine sits behind the Renderer seam; the pongo subpackage provides the
// default pongo2-backed implementation. Before rendering, the engine checks
// that every variable the template declares is covered by the caller context
// plus the examples and query slots, so missing data fails loudly instead of
// rendering a hole into the prompt.
package prompt
