package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Aashaypariskar/Premade-Assignment-sub001/internal/model"
)

// styles holds the text-mode styles. The renderer is bound to the output
// writer, so colour is dropped when it is not a terminal.
type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
	pending lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
		label:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#888888")),
		ok:      r.NewStyle().Foreground(lipgloss.Color("#3FB950")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#D29922")),
		bad:     r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		pending: r.NewStyle().Foreground(lipgloss.Color("#AAAAAA")),
	}
}

// col renders v as a bold label padded to a fixed column.
func (s styles) col(v string) string {
	return s.label.Render(fmt.Sprintf("%-14s", v))
}

func (s styles) progressStatus(status model.ProgressStatus) string {
	switch status {
	case model.ProgressCompleted:
		return s.ok.Render(string(status))
	case model.ProgressInProgress:
		return s.warn.Render(string(status))
	default:
		return s.pending.Render(string(status))
	}
}

func (s styles) areaLine(p model.AreaProgress) string {
	line := fmt.Sprintf("%s %d/%d items  %3d%%  %s",
		s.col(p.AreaID), p.Completed, p.TotalRequired, p.Percentage, s.progressStatus(p.Status))
	if p.PendingDefects > 0 {
		line += "  " + s.bad.Render(plural(p.PendingDefects, "open defect"))
	}
	return line
}

func renderAreaProgress(w io.Writer, p model.AreaProgress) {
	s := newStyles(w)
	fmt.Fprintln(w, s.areaLine(p))
}

func renderSessionProgress(w io.Writer, sess model.Session, p model.SessionProgress) {
	s := newStyles(w)
	fmt.Fprintln(w, s.title.Render(fmt.Sprintf("Session %s", sess.ID)))
	fmt.Fprintf(w, "%s %s\n", s.col("coach"), sess.CoachRef)
	fmt.Fprintf(w, "%s %s\n", s.col("module"), sess.Module)
	fmt.Fprintf(w, "%s %s\n", s.col("session"), sess.Status)
	fmt.Fprintf(w, "%s %d/%d items  %d%%  %s\n", s.col("progress"),
		p.Completed, p.TotalRequired, p.Percentage, s.progressStatus(p.Status))
	if len(p.Areas) == 0 {
		fmt.Fprintln(w, s.muted.Render("no areas are inspected by this module"))
		return
	}
	fmt.Fprintln(w)
	for _, a := range p.Areas {
		fmt.Fprintln(w, "  "+s.areaLine(a))
	}
}

func renderSessions(w io.Writer, sessions []model.Session) {
	s := newStyles(w)
	if len(sessions) == 0 {
		fmt.Fprintln(w, s.muted.Render("no sessions"))
		return
	}
	for _, sess := range sessions {
		fmt.Fprintf(w, "%s  %-13s %-11s %s\n", sess.ID, sess.Module, sess.Status, sess.CoachRef)
	}
}

func renderAnswer(w io.Writer, a model.Answer) {
	s := newStyles(w)
	status := string(a.Outcome.Status())
	switch {
	case a.PendingDefect():
		status = s.bad.Render(status)
	case a.Resolved():
		status = s.ok.Render(status + " (resolved)")
	}
	line := fmt.Sprintf("%s  %s  %s", a.Key, s.muted.Render(a.AreaID+"/"+a.ItemID), status)
	if v, ok := model.ValueOf(a.Outcome); ok {
		line += fmt.Sprintf("  %g", v)
	}
	if reasons := model.ReasonsOf(a.Outcome); reasons.Len() > 0 {
		line += "  [" + strings.Join(reasons.Values(), ", ") + "]"
	}
	fmt.Fprintln(w, line)
}

func renderDefects(w io.Writer, defects []model.Answer) {
	s := newStyles(w)
	if len(defects) == 0 {
		fmt.Fprintln(w, s.ok.Render("no open defects"))
		return
	}
	fmt.Fprintln(w, s.title.Render(plural(len(defects), "open defect")))
	for _, d := range defects {
		fmt.Fprintf(w, "  %s  %s  [%s]  %s\n",
			s.col(d.AreaID),
			d.Key,
			strings.Join(model.ReasonsOf(d.Outcome).Values(), ", "),
			s.muted.Render(d.BeforePhoto))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
