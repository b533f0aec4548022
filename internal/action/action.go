package action

import "sort"

// Action is one user-invokable writing command.
type Action struct {
	Name   string
	Title  string
	Prompt string
	// Interactive actions ask the user for the instruction before sending.
	Interactive bool
}

const (
	Continue  = "continue"
	Rewrite   = "rewrite"
	Summarize = "summarize"
	Custom    = "prompt"
)

// DefaultCustomPrompt pre-fills the custom prompt editor.
const DefaultCustomPrompt = "You are an AI writing assistant that continues existing text based on context from prior text."

// Actions is the registry of all available actions
var Actions = map[string]Action{
	Continue: {
		Name:   Continue,
		Title:  "Continue text",
		Prompt: "You are an AI writing assistant that continues existing text based on context from prior text. Give more weight/priority to the later characters than the beginning ones. Limit your response to no more than 200 characters, but make sure to construct complete sentences.",
	},
	Rewrite: {
		Name:   Rewrite,
		Title:  "Rewrite text",
		Prompt: "You are an AI writing assistant that rewrites the given text to be like an article from a news magazine. Include a Strong Headline, create a Engaging Lead make sure that the text has a clear structure is shows a Balanced Perspective and has Quotes where and when necessary.",
	},
	Summarize: {
		Name:   Summarize,
		Title:  "Summarize text",
		Prompt: "You are an AI writing assistant that summarizes the given text. Limit your response to no more than 1500 characters, but make sure to construct complete sentences.",
	},
	Custom: {
		Name:        Custom,
		Title:       "Create custom prompt",
		Prompt:      DefaultCustomPrompt,
		Interactive: true,
	},
}

// Get retrieves an action by name, returns nil if not found
func Get(name string) *Action {
	if a, ok := Actions[name]; ok {
		return &a
	}
	return nil
}

// List returns all action names sorted alphabetically
func List() []string {
	names := make([]string, 0, len(Actions))
	for name := range Actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
