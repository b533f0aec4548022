package chat

// LanguageDirective returns the instruction that pins the answer language.
func LanguageDirective(lang string) string {
	if lang == AutoLanguage {
		return "Answer in the same language as the inserted input text"
	}
	return "You speak and answer in " + lang
}

// SystemInstruction joins the language directive and the task instruction.
func SystemInstruction(lang, instruction string) string {
	return LanguageDirective(lang) + ". " + instruction
}

// BuildRequest constructs the payload for one invocation.
// The document text is sent as the user message without any transformation.
func BuildRequest(lang, instruction, text string) Request {
	return Request{
		Temperature: DefaultTemperature,
		Messages: []Message{
			{Role: RoleSystem, Content: SystemInstruction(lang, instruction)},
			{Role: RoleUser, Content: text},
		},
	}
}

// System returns the system message content, or "" if absent.
func (r Request) System() string {
	for _, m := range r.Messages {
		if m.Role == RoleSystem {
			return m.Content
		}
	}
	return ""
}

// User returns the user message content, or "" if absent.
func (r Request) User() string {
	for _, m := range r.Messages {
		if m.Role == RoleUser {
			return m.Content
		}
	}
	return ""
}
