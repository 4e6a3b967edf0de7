package dashboard

import (
	"fmt"
	"strings"
)

func (m Model) renderError() string {
	header := headerStyle.Render(" termcoord lead ")

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(errorStyle.Render("⚠ failed to read state store") + "\n\n")
	b.WriteString(dimStyle.Render("root: ") + valueStyle.Render(m.coord.Root.Dir) + "\n")
	b.WriteString(dimStyle.Render("error: ") + errorStyle.Render(m.err.Error()) + "\n\n")
	b.WriteString(footerStyle.Render("[q] quit  [r] retry"))

	return containerStyle.Render(header + "\n" + b.String())
}

func (m Model) renderDashboard() string {
	var b strings.Builder

	lastUpdateStr := "never"
	if !m.lastUpdate.IsZero() {
		lastUpdateStr = m.lastUpdate.Format("15:04:05")
	}

	header := headerStyle.Render(" termcoord lead ")
	headerLine := fmt.Sprintf("%s   %s",
		dimStyle.Render("last refresh:"),
		valueStyle.Render(lastUpdateStr))

	b.WriteString(header + "\n" + headerLine + "\n")

	b.WriteString(m.renderSessions())
	b.WriteString(m.renderConflicts())
	b.WriteString(m.renderWorkers())

	footer := footerKeyStyle.Render("[q]") + footerStyle.Render(" quit  ") +
		footerKeyStyle.Render("[r]") + footerStyle.Render(" refresh  ") +
		footerStyle.Render("auto-refreshes on state change")
	b.WriteString("\n" + footer)

	return containerStyle.Render(b.String())
}

func (m Model) renderSessions() string {
	var b strings.Builder
	b.WriteString("\n" + sectionStyle.Render(fmt.Sprintf("┃ Sessions (%d)", len(m.snap.sessions))) + "\n")

	if len(m.snap.sessions) == 0 {
		b.WriteString(dimStyle.Render("  no active sessions") + "\n")
		return b.String()
	}

	for _, s := range m.snap.sessions {
		inbox := m.snap.inboxCounts[s.Session]
		inboxNote := ""
		if inbox > 0 {
			inboxNote = "  " + warningStyle.Render(fmt.Sprintf("✉ %d", inbox))
		}
		b.WriteString(fmt.Sprintf("  %s %s  %s  %s%s\n",
			sessionBadge(string(s.Status)),
			valueStyle.Render(s.Session),
			labelStyle.Render(s.CWD),
			dimStyle.Render(fmt.Sprintf("files=%d", len(s.FilesTouched))),
			inboxNote))
	}
	return b.String()
}

func (m Model) renderConflicts() string {
	var b strings.Builder
	b.WriteString("\n" + sectionStyle.Render("┃ File conflicts") + "\n")

	if len(m.snap.conflicts) == 0 {
		b.WriteString(healthyStyle.Render("  none") + "\n")
		return b.String()
	}

	for _, c := range m.snap.conflicts {
		b.WriteString("  " + errorStyle.Render("⚠") + " " +
			valueStyle.Render(c.File) + "  " +
			dimStyle.Render(strings.Join(c.Sessions, ", ")) + "\n")
	}
	return b.String()
}

func (m Model) renderWorkers() string {
	var b strings.Builder
	b.WriteString("\n" + sectionStyle.Render(fmt.Sprintf("┃ Workers (%d)", len(m.snap.workers))) + "\n")

	if len(m.snap.workers) == 0 {
		b.WriteString(dimStyle.Render("  none spawned") + "\n")
		return b.String()
	}

	for _, w := range m.snap.workers {
		badge := healthyStyle.Render("●")
		if w.Status == "running" {
			badge = warningStyle.Render("●")
		} else if w.Status == "unknown" {
			badge = dimStyle.Render("●")
		}
		pipelineNote := ""
		if w.Pipeline != "" {
			pipelineNote = "  " + dimStyle.Render("pipeline="+w.Pipeline)
		}
		b.WriteString(fmt.Sprintf("  %s %s  %s  %s%s\n",
			badge,
			valueStyle.Render(w.TaskID),
			labelStyle.Render(string(w.Mode)),
			dimStyle.Render(w.Directory),
			pipelineNote))
	}
	return b.String()
}
