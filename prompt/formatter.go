package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

// Style selects how sections are wrapped in the rendered prompt.
type Style string

const (
	StyleMarkdown Style = "markdown"
	StyleXML      Style = "xml"
	StylePlain    Style = "plain"
)

// Example is one input/output demonstration pair.
type Example struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// MissingVariableError reports a placeholder with no value in the supplied
// variable mapping.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("prompt: no value for placeholder {%s}", e.Name)
}

// placeholderRe matches identifier-shaped {variable} placeholders. Literal
// braces around non-identifiers (JSON, code) never match.
var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Substitute replaces every {variable} placeholder in template with its
// value from vars. A placeholder with no matching key is a hard error; this
// is the single substitution policy shared by Formatter and Manager.
func Substitute(template string, vars map[string]string) (string, error) {
	var missing string
	result := placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := vars[name]; ok {
			return v
		}
		if missing == "" {
			missing = name
		}
		return m
	})
	if missing != "" {
		return "", &MissingVariableError{Name: missing}
	}
	return result, nil
}

// Formatter assembles a structured prompt from optional named sections.
// Section order in the rendered prompt is fixed: role, task, guide, output
// format, examples, user input. Absent sections are omitted entirely.
type Formatter struct {
	role         string
	task         string
	guide        string
	outputFormat string
	examples     []Example
	style        Style
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithRole sets the role section.
func WithRole(role string) FormatterOption {
	return func(f *Formatter) { f.role = role }
}

// WithTask sets the task section.
func WithTask(task string) FormatterOption {
	return func(f *Formatter) { f.task = task }
}

// WithGuide sets the guide section.
func WithGuide(guide string) FormatterOption {
	return func(f *Formatter) { f.guide = guide }
}

// WithOutputFormat sets the output format section.
func WithOutputFormat(format string) FormatterOption {
	return func(f *Formatter) { f.outputFormat = format }
}

// WithExamples sets the input/output example pairs.
func WithExamples(examples ...Example) FormatterOption {
	return func(f *Formatter) { f.examples = examples }
}

// WithStyle sets the section wrapping style.
func WithStyle(style Style) FormatterOption {
	return func(f *Formatter) { f.style = style }
}

// NewFormatter creates a Formatter. The default style is markdown.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{style: StyleMarkdown}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// section pairs a fixed name with rendered content.
type section struct {
	name    string
	content string
}

// FormatPrompt renders the configured sections followed by the user input,
// then substitutes {variable} placeholders from vars.
func (f *Formatter) FormatPrompt(userInput string, vars map[string]string) (string, error) {
	// An empty example list renders no section at all, so no-example
	// prompts never fail.
	examples := ""
	if len(f.examples) > 0 {
		var sb strings.Builder
		sb.WriteString("Examples:\n")
		for i, ex := range f.examples {
			fmt.Fprintf(&sb, "Example %d\nInput: %s\nOutput: %s\n", i+1, ex.Input, ex.Output)
		}
		examples = sb.String()
	}

	all := []section{
		{"ROLE", f.role},
		{"TASK", f.task},
		{"GUIDE", f.guide},
		{"OUTPUT_FORMAT", f.outputFormat},
		{"EXAMPLES", examples},
	}

	var sections []section
	for _, s := range all {
		if s.content != "" {
			sections = append(sections, s)
		}
	}
	sections = append(sections, section{"USER_INPUT", userInput})

	rendered := make([]string, 0, len(sections))
	for _, s := range sections {
		rendered = append(rendered, wrapSection(s, f.style))
	}
	out := strings.Join(rendered, "\n\n")

	// A nil mapping means no substitution was requested; a non-nil one is
	// strict and fails on any unresolved placeholder.
	if vars != nil {
		return Substitute(out, vars)
	}
	return out, nil
}

func wrapSection(s section, style Style) string {
	switch style {
	case StyleXML:
		name := strings.ToLower(s.name)
		return fmt.Sprintf("<%s>%s</%s>", name, s.content, name)
	case StylePlain:
		return s.content
	default:
		return fmt.Sprintf("## %s\n%s", s.name, s.content)
	}
}
