package components

// Component is a widget embedded by the views. Unlike tea.Model it never
// sees input; the main model routes messages and pushes state in.
type Component interface {
	SetSize(width, height int)
	View() string
}
