package tui

// errorOverlayModel is a modal box over the current screen for failures that
// do not belong to any screen, such as a clipboard error.
type errorOverlayModel struct {
	message string
}

func (m errorOverlayModel) View() string {
	content := errorStyle.Render("Something went wrong") + "\n\n" + m.message + "\n\n" +
		helpStyle.Render("enter / esc: close")
	return overlayBoxStyle.Render(content)
}
