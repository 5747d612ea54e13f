package tui

// confirmModel asks before an irreversible delete. kind is the accusative
// noun shown to the user ("задачу", "файл").
type confirmModel struct {
	kind    string
	subject string
}

func (m confirmModel) View() string {
	content := "Удалить " + m.kind + " «" + fitText(m.subject, 40) + "»?\n\n"
	content += helpStyle.Render("y: да │ n: нет")
	return overlayBoxStyle.Render(content)
}
