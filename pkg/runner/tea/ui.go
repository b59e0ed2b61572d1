package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/tick/pkg/app"
	"tableflip.dev/tick/pkg/confirm"
	"tableflip.dev/tick/pkg/countdown"
	"tableflip.dev/tick/pkg/edit"
	"tableflip.dev/tick/pkg/engine"
	"tableflip.dev/tick/pkg/glyph"
	"tableflip.dev/tick/pkg/task"
	"tableflip.dev/tick/pkg/view"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeEdit
	modeConfirm
	modeHelp
)

// Due dates are typed inline after the text: "water plants @ 2026-03-01".
const dueSeparator = " @ "

type taskItem struct {
	t         *task.Task
	remaining string
}

func (it taskItem) Title() string {
	text := it.t.Text
	if it.t.Status == task.Completed {
		text = glyph.Strike(text)
		return fmt.Sprintf("%s %s", glyph.Completed, text)
	}
	if it.remaining != "" {
		return fmt.Sprintf("%s %s  (%s)", glyph.Pending, text, it.remaining)
	}
	return fmt.Sprintf("%s %s", glyph.Pending, text)
}
func (it taskItem) Description() string { return "" }
func (it taskItem) FilterValue() string { return it.t.Text }

// Model is the live dashboard: one subscription feeding the list, one
// countdown tracker feeding the due columns, and single-slot edit and
// confirmation state.
type Model struct {
	svc *app.Service
	eng *engine.Engine
	ctx context.Context

	mode   mode
	filter view.Filter

	sub     *engine.Subscription
	track   *countdown.Tracker
	session *edit.Session
	gate    *confirm.Gate

	tasks     []*task.Task
	remaining map[string]countdown.Remaining

	taskList list.Model
	input    textinput.Model

	owner  string
	status string

	termWidth  int
	termHeight int
}

func New(svc *app.Service, eng *engine.Engine) Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	d.SetSpacing(0)

	l := list.New([]list.Item{}, d, 80, 20)
	l.Title = "Tasks"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "Type here"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")
	ti.Styles.Cursor.Shape = tea.CursorUnderline

	email := ""
	if u, err := svc.Owner(); err == nil {
		email = u.Email
	}

	return Model{
		svc:       svc,
		eng:       eng,
		ctx:       context.Background(),
		mode:      modeNormal,
		filter:    view.FilterAll,
		track:     countdown.NewTracker(time.Second),
		session:   &edit.Session{},
		gate:      &confirm.Gate{},
		remaining: make(map[string]countdown.Remaining),
		taskList:  l,
		input:     ti,
		owner:     email,
		status:    "NORMAL: j/k move, f filter, o add, i edit, x toggle, d delete, L sign out, ? help",
	}
}

// messages
type errMsg struct{ err error }
type subscribedMsg struct{ sub *engine.Subscription }
type syncMsg struct{ ev engine.Event }
type subClosedMsg struct{}
type tickMsg struct{ tick countdown.Tick }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.subscribe(), m.waitForTick())
}

func (m *Model) subscribe() tea.Cmd {
	return func() tea.Msg {
		u, err := m.svc.Owner()
		if err != nil {
			return errMsg{err}
		}
		sub, err := m.eng.Subscribe(m.ctx, u.UID)
		if err != nil {
			return errMsg{err}
		}
		return subscribedMsg{sub}
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-sub.Events()
		if !ok {
			return subClosedMsg{}
		}
		return syncMsg{ev}
	}
}

func (m *Model) waitForTick() tea.Cmd {
	return func() tea.Msg {
		return tickMsg{<-m.track.Ticks()}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	skipListRouting := false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.status = "ERR: " + msg.err.Error() + " (R to reconnect)"
	case subscribedMsg:
		m.sub = msg.sub
		m.status = "Connected"
		cmds = append(cmds, m.waitForEvent())
	case subClosedMsg:
		m.sub = nil
	case syncMsg:
		if msg.ev.Err != nil {
			m.sub = nil
			m.status = "SYNC LOST: " + msg.ev.Err.Error() + " (R to reconnect)"
			break
		}
		m.applySnapshot(msg.ev.Tasks)
		cmds = append(cmds, m.waitForEvent())
	case tickMsg:
		m.remaining[msg.tick.TaskID] = msg.tick.Remaining
		m.rebuildItems()
		cmds = append(cmds, m.waitForTick())
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			if key := msg.String(); key == "q" || key == "esc" || key == "?" {
				m.mode = modeNormal
				skipListRouting = true
			}
		case modeConfirm:
			switch msg.String() {
			case "y", "enter":
				if err := m.gate.Confirm(m.ctx); err != nil {
					cmds = append(cmds, func() tea.Msg { return errMsg{err} })
				} else {
					m.status = "Confirmed"
				}
				m.mode = modeNormal
				skipListRouting = true
			case "n", "esc", "q":
				m.gate.Cancel()
				m.mode = modeNormal
				m.status = "Cancelled"
				skipListRouting = true
			}
		case modeInsert:
			switch msg.String() {
			case "enter":
				text, due := splitDue(m.input.Value())
				if _, err := m.svc.Add(m.ctx, text, due); err != nil {
					if err == task.ErrEmptyText {
						m.status = "Task text is required"
						skipListRouting = true
						break
					}
					cmds = append(cmds, func() tea.Msg { return errMsg{err} })
				} else {
					m.status = "Added"
				}
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				skipListRouting = true
			case "esc":
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.status = "Add cancelled"
				skipListRouting = true
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeEdit:
			switch msg.String() {
			case "enter":
				text, due := splitDue(m.input.Value())
				m.session.SetText(text)
				m.session.SetDue(due)
				if err := m.session.Save(m.ctx, m.svc); err != nil {
					if err == task.ErrEmptyText {
						// The edit stays open; keep typing.
						m.status = "Task text is required"
						skipListRouting = true
						break
					}
					cmds = append(cmds, func() tea.Msg { return errMsg{err} })
				} else {
					m.status = "Saved"
				}
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				skipListRouting = true
			case "esc":
				m.session.Cancel()
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.status = "Edit cancelled"
				skipListRouting = true
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeNormal:
			switch msg.String() {
			case "j", "down":
				m.taskList.CursorDown()
			case "k", "up":
				m.taskList.CursorUp()
			case "g":
				m.taskList.Select(0)
			case "G":
				m.taskList.Select(len(m.taskList.Items()) - 1)

			case "f", "tab":
				m.cycleFilter()
				skipListRouting = true

			case "o", "O":
				m.mode = modeInsert
				m.input.Placeholder = "New task (append" + dueSeparator + "2026-03-01 15:04 for a due date)"
				m.input.SetValue("")
				if cmd := m.input.Focus(); cmd != nil {
					cmds = append(cmds, cmd)
				}
				cmds = append(cmds, textinput.Blink)

			case "i":
				if t := m.currentTask(); t != nil {
					m.mode = modeEdit
					m.session.Start(t)
					m.input.Placeholder = "Edit task"
					m.input.SetValue(joinDue(t))
					m.input.CursorEnd()
					if cmd := m.input.Focus(); cmd != nil {
						cmds = append(cmds, cmd)
					}
					cmds = append(cmds, textinput.Blink)
				}

			case "x", "space":
				if t := m.currentTask(); t != nil {
					if err := m.svc.Toggle(m.ctx, t); err != nil {
						cmds = append(cmds, func() tea.Msg { return errMsg{err} })
					} else {
						m.status = "Toggled"
					}
				}

			case "d":
				if t := m.currentTask(); t != nil {
					id := t.ID
					m.gate.Request(confirm.Action{
						Kind:   confirm.KindDeleteTask,
						TaskID: id,
						Do: func(ctx context.Context) error {
							return m.svc.Delete(ctx, id)
						},
					})
					m.mode = modeConfirm
					m.status = fmt.Sprintf("Delete %q? y/n", t.Text)
					skipListRouting = true
				}

			case "L":
				m.gate.Request(confirm.Action{
					Kind: confirm.KindSignOut,
					Do: func(ctx context.Context) error {
						m.sub.Cancel()
						return m.svc.SignOut(ctx)
					},
				})
				m.mode = modeConfirm
				m.status = "Sign out? y/n"
				skipListRouting = true

			case "R":
				if m.sub == nil {
					cmds = append(cmds, m.subscribe())
					m.status = "Reconnecting"
					skipListRouting = true
				}

			case "?":
				m.mode = modeHelp
				skipListRouting = true

			case "q", "ctrl+c":
				m.sub.Cancel()
				m.track.Close()
				cmds = append(cmds, tea.Quit)
				skipListRouting = true
			}
		}
	}

	if m.mode == modeNormal && !skipListRouting {
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// applySnapshot replaces the collection wholesale, reconciles the open
// edit, and re-syncs the countdown set against what is now displayed.
func (m *Model) applySnapshot(tasks []*task.Task) {
	m.tasks = tasks
	if m.session.Reconcile(tasks) && m.mode == modeEdit {
		m.mode = modeNormal
		m.input.Reset()
		m.input.Blur()
		m.status = "Edit cancelled: task no longer exists"
	}
	now := time.Now()
	for id := range m.remaining {
		delete(m.remaining, id)
	}
	for _, t := range tasks {
		if due, ok := t.DueAt(); ok && t.Status == task.Pending {
			m.remaining[t.ID] = countdown.Until(due, now)
		}
	}
	m.rebuildItems()
	m.track.Sync(view.Project(tasks, m.filter))
}

// cycleFilter advances the visible filter and rescopes the countdown tracker
// so hidden tasks stop ticking and newly visible ones resume.
func (m *Model) cycleFilter() {
	m.filter = m.filter.Next()
	m.rebuildItems()
	m.track.Sync(view.Project(m.tasks, m.filter))
	m.status = "Filter: " + m.filter.String()
}

func (m *Model) rebuildItems() {
	visible := view.Project(m.tasks, m.filter)
	items := make([]list.Item, 0, len(visible))
	for _, t := range visible {
		it := taskItem{t: t}
		if r, ok := m.remaining[t.ID]; ok && t.Status == task.Pending {
			it.remaining = r.String()
		}
		items = append(items, it)
	}
	idx := m.taskList.Index()
	m.taskList.SetItems(items)
	if len(items) > 0 && idx >= len(items) {
		m.taskList.Select(len(items) - 1)
	}
}

func (m *Model) currentTask() *task.Task {
	sel := m.taskList.SelectedItem()
	if sel == nil {
		return nil
	}
	it, ok := sel.(taskItem)
	if !ok {
		return nil
	}
	return it.t
}

func (m Model) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Welcome, %s", m.owner))
	filterLine := lipgloss.NewStyle().Faint(true).Render("filter: " + m.filter.String())

	body := m.taskList.View()
	if m.termWidth > 0 {
		body = truncate.String(body, uint(m.termWidth))
	}

	modeStr := map[mode]string{
		modeNormal:  "NORMAL",
		modeInsert:  "INSERT",
		modeEdit:    "EDIT",
		modeConfirm: "CONFIRM",
		modeHelp:    "HELP",
	}[m.mode]
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
		Render(fmt.Sprintf("[%s] %s", modeStr, m.status))

	out := header + "  " + filterLine + "\n\n" + body

	switch m.mode {
	case modeInsert:
		out += "\n\nAdd: " + m.input.View()
	case modeEdit:
		out += "\n\nEdit: " + m.input.View()
	case modeConfirm:
		if a, ok := m.gate.Armed(); ok {
			panel := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 2)
			out += "\n\n" + panel.Render(fmt.Sprintf("Confirm %s? (y/n)", a.Kind))
		}
	case modeHelp:
		help := "Keys: ↑/↓ move, f/tab cycle filter, o add, i edit, x toggle, d delete, L sign out, R reconnect, q quit"
		out += "\n\n" + lipgloss.NewStyle().Italic(true).Render(help)
	}

	return out + "\n\n" + status
}

func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	height := m.termHeight - 6
	if height < 5 {
		height = 5
	}
	m.taskList.SetSize(m.termWidth, height)
}

// splitDue separates "text @ due" input into its parts. A trailing part
// that does not parse as a date stays in the text, so task text may itself
// contain " @ ".
func splitDue(in string) (string, *time.Time) {
	if i := strings.LastIndex(in, dueSeparator); i >= 0 {
		if due, err := task.ParseDue(in[i+len(dueSeparator):]); err == nil {
			return strings.TrimSpace(in[:i]), due
		}
	}
	return strings.TrimSpace(in), nil
}

func joinDue(t *task.Task) string {
	if due, ok := t.DueAt(); ok {
		return t.Text + dueSeparator + due.Local().Format("2006-01-02 15:04")
	}
	return t.Text
}

// Run launches the dashboard.
func Run(svc *app.Service, eng *engine.Engine) error {
	p := tea.NewProgram(New(svc, eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
