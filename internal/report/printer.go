package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/allocation"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/store/sqlite"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

// Printer writes human-readable reports.
type Printer struct {
	w      io.Writer
	styles Styles
	width  int
	err    error
}

// NewPrinter returns a Printer writing to w. Lines are cut to width columns;
// a non-positive width means DefaultWidth.
func NewPrinter(w io.Writer, styles Styles, width int) *Printer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Printer{w: w, styles: styles, width: width}
}

// Err returns the first write error seen by the printer.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) line(format string, args ...any) {
	if p.err != nil {
		return
	}
	text := truncate(fmt.Sprintf(format, args...), p.width)
	_, p.err = fmt.Fprintln(p.w, text)
}

// Blank writes an empty line.
func (p *Printer) Blank() error {
	if p.err == nil {
		_, p.err = fmt.Fprintln(p.w)
	}
	return p.err
}

// Note writes a muted one-line message.
func (p *Printer) Note(msg string) error {
	p.line("%s", p.styles.Muted.Render(msg))
	return p.err
}

func (p *Printer) rule() {
	p.line("%s", p.styles.Rule.Render(strings.Repeat("─", min(p.width, 60))))
}

// Teams prints every team with its members.
func (p *Printer) Teams(teams []team.Team) error {
	if len(teams) == 0 {
		p.line("%s", p.styles.Muted.Render("No teams formed."))
		return p.err
	}
	for i, t := range teams {
		if i > 0 {
			_ = p.Blank()
		}
		p.line("%s  %s",
			p.styles.Title.Render(fmt.Sprintf("Team %d", t.Number)),
			p.styles.Muted.Render(fmt.Sprintf("%d members, avg skill %.2f", t.Size(), t.AverageSkill())))
		p.rule()
		for _, m := range t.Members {
			p.member(m)
		}
	}
	return p.err
}

// Unassigned prints the participants left in the pool.
func (p *Printer) Unassigned(ps []participant.Participant) error {
	if len(ps) == 0 {
		p.line("%s", p.styles.Good.Render("Everyone was placed."))
		return p.err
	}
	p.line("%s  %s",
		p.styles.Warn.Render("Unassigned"),
		p.styles.Muted.Render(fmt.Sprintf("%d participants", len(ps))))
	p.rule()
	for _, m := range ps {
		p.member(m)
	}
	return p.err
}

func (p *Printer) member(m participant.Participant) {
	p.line("  %-8s %-20s %-10s skill %2d  %-12s %s",
		m.ID, m.Name, m.Archetype, m.SkillLevel, m.PreferredActivity,
		p.styles.Muted.Render(string(m.Position)))
}

// Summary prints balance statistics.
func (p *Printer) Summary(s allocation.Summary) error {
	p.line("%s", p.styles.Header.Render("Summary"))
	p.rule()
	p.line("  %s %d", p.styles.Label.Render("participants:"), s.Participants)
	p.line("  %s %d", p.styles.Label.Render("teams:       "), len(s.Teams))
	p.line("  %s %d", p.styles.Label.Render("unassigned:  "), s.Unassigned)
	p.line("  %s %.2f", p.styles.Label.Render("target avg:  "), s.TargetAvg)
	if len(s.Teams) > 0 {
		p.line("  %s %.2f .. %.2f (spread %.2f, mean deviation %.2f)",
			p.styles.Label.Render("team avg:    "),
			s.MinTeamAvg, s.MaxTeamAvg, s.Spread, s.MeanAbsDev)
	}
	if len(s.UnassignedByArchetype) > 0 {
		parts := make([]string, 0, len(s.UnassignedByArchetype))
		for _, a := range slices.Sorted(maps.Keys(s.UnassignedByArchetype)) {
			parts = append(parts, fmt.Sprintf("%s=%d", a, s.UnassignedByArchetype[a]))
		}
		p.line("  %s %s", p.styles.Label.Render("pool mix:    "), strings.Join(parts, " "))
	}
	return p.err
}

// Runs prints a listing of stored runs.
func (p *Printer) Runs(runs []sqlite.RunInfo) error {
	if len(runs) == 0 {
		p.line("%s", p.styles.Muted.Render("No stored runs."))
		return p.err
	}
	p.line("%s", p.styles.Header.Render(fmt.Sprintf("%-36s  %-16s  %4s  %6s  %5s  %4s  %6s",
		"RUN", "CREATED", "SIZE", "PEOPLE", "TEAMS", "POOL", "TARGET")))
	for _, r := range runs {
		p.line("%-36s  %-16s  %4d  %6d  %5d  %4d  %6.2f",
			r.ID, r.CreatedAt.Local().Format(time.DateOnly+" 15:04"),
			r.TeamSize, r.Participants, r.Teams, r.Unassigned, r.TargetAvg)
	}
	return p.err
}
