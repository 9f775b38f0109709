package ai

import (
	_ "embed"
	"text/template"

	"github.com/amishk599/roomwatch/internal/model"
)

//go:embed prompts/structured.md
var structuredPromptRaw string

//go:embed prompts/freetext.md
var freeTextPromptRaw string

// Parsed once at package init; reused on every Summarize call.
var (
	StructuredTemplate = template.Must(template.New("structured").Parse(structuredPromptRaw))
	FreeTextTemplate   = template.Must(template.New("freetext").Parse(freeTextPromptRaw))
)

// TemplateFor returns the prompt template for the given report mode.
func TemplateFor(mode model.Mode) *template.Template {
	if mode == model.ModeFreeText {
		return FreeTextTemplate
	}
	return StructuredTemplate
}
