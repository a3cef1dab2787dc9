package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptGapSystem is the system prompt of the career advisor.
	// This prompt has no placeholders.
	PromptGapSystem = "gap_system"

	// PromptGapHuman is the user message template.
	// It expects {role}, {job_context} and {cv_text} placeholders.
	PromptGapHuman = "gap_human"
)
