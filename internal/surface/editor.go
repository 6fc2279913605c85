package surface

// Editor is the rich-text component embedded in a note. The surface never
// interprets its content.
type Editor interface {
	Content() string
	SetContent(content string)
}

// EditorFactory creates an editor showing initial and calls onChange with the
// new markup whenever the user edits it.
type EditorFactory func(initial string, onChange func(content string)) Editor
