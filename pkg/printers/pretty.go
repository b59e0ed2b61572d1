package printers

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tick/pkg/countdown"
	"tableflip.dev/tick/pkg/glyph"
	"tableflip.dev/tick/pkg/task"
)

// PrettyPrint renders task lists for one-shot commands. Now is injectable
// so countdown columns are stable under test.
type PrettyPrint struct {
	ShowID bool
	Now    func() time.Time
}

func (pp *PrettyPrint) now() time.Time {
	if pp.Now != nil {
		return pp.Now()
	}
	return time.Now()
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" task")
	default:
		_, _ = c.Println(" tasks")
	}
}

// Tasks prints each task as a row: status glyph, text, and a due column
// when one is set. Completed text is struck through; overdue rows get the
// overdue marker instead of a countdown.
func (pp *PrettyPrint) Tasks(tasks ...*task.Task) {
	if len(tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	now := pp.now()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range tasks {
		if t == nil {
			continue
		}
		row := make([]interface{}, 0, 4)
		if pp.ShowID {
			row = append(row, y.Sprint(t.ID))
		}
		row = append(row, pp.mark(t, now), pp.text(t), pp.due(t, now))
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func (pp *PrettyPrint) mark(t *task.Task, now time.Time) string {
	if t.Status == task.Completed {
		return glyph.Completed.String()
	}
	if due, ok := t.DueAt(); ok && countdown.Until(due, now).Overdue {
		return color.New(color.FgHiRed).Sprint(glyph.Overdue)
	}
	return glyph.Pending.String()
}

func (pp *PrettyPrint) text(t *task.Task) string {
	if t.Status == task.Completed {
		return color.New(color.Faint).Sprint(glyph.Strike(t.Text))
	}
	return t.Text
}

func (pp *PrettyPrint) due(t *task.Task, now time.Time) string {
	due, ok := t.DueAt()
	if !ok || t.Status == task.Completed {
		return ""
	}
	r := countdown.Until(due, now)
	if r.Overdue {
		return color.New(color.FgHiRed).Sprint("overdue")
	}
	return color.New(color.Faint).Sprintf("due in %s", r)
}
