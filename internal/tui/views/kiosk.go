package views

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/markargand/labourlog/internal/cli"
	"github.com/markargand/labourlog/internal/entry"
	"github.com/markargand/labourlog/internal/service"
	"github.com/markargand/labourlog/internal/tui/ui"
)

// kioskMode is the form currently open in the kiosk view
type kioskMode int

const (
	kioskModeIdle kioskMode = iota
	kioskModeIn
	kioskModeOut
)

// Form field positions. The third field is the project code when clocking
// in and the break minutes when clocking out.
const (
	fieldBadge = iota
	fieldPIN
	fieldExtra
	fieldCount
)

// KioskModel is the shop-floor terminal: badge and PIN clock-in and
// clock-out, plus the list of open shifts.
type KioskModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int

	shifts []entry.Shift
	dir    *entry.Directory
	now    time.Time
	err    error
	notice string

	mode    kioskMode
	inputs  [fieldCount]textinput.Model
	focused int
}

// NewKioskModel creates a new kiosk view model
func NewKioskModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) KioskModel {
	var inputs [fieldCount]textinput.Model

	inputs[fieldBadge] = textinput.New()
	inputs[fieldBadge].Placeholder = "Badge number"
	inputs[fieldBadge].CharLimit = 32
	inputs[fieldBadge].Width = 20

	inputs[fieldPIN] = textinput.New()
	inputs[fieldPIN].Placeholder = "PIN"
	inputs[fieldPIN].CharLimit = 16
	inputs[fieldPIN].Width = 20
	inputs[fieldPIN].EchoMode = textinput.EchoPassword
	inputs[fieldPIN].EchoCharacter = '•'

	inputs[fieldExtra] = textinput.New()
	inputs[fieldExtra].CharLimit = 32
	inputs[fieldExtra].Width = 20

	return KioskModel{
		services: services,
		styles:   styles,
		keys:     keys,
		inputs:   inputs,
		dir:      entry.NewDirectory(nil, nil),
	}
}

// shiftsLoadedMsg is sent when the open shifts are loaded
type shiftsLoadedMsg struct {
	shifts []entry.Shift
	dir    *entry.Directory
	now    time.Time
}

// kioskErrMsg is sent when a clock-in or clock-out is refused
type kioskErrMsg struct {
	err error
}

// kioskTickMsg refreshes the elapsed times of open shifts
type kioskTickMsg time.Time

// Init implements tea.Model
func (m KioskModel) Init() tea.Cmd {
	return tea.Batch(m.loadShifts(), m.tick())
}

// Update implements tea.Model
func (m KioskModel) Update(msg tea.Msg) (KioskModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != kioskModeIdle {
			return m.handleForm(msg)
		}
		switch {
		case key.Matches(msg, m.keys.ClockIn):
			return m.openForm(kioskModeIn)
		case key.Matches(msg, m.keys.ClockOut):
			return m.openForm(kioskModeOut)
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadShifts()
		}
		return m, nil

	case shiftsLoadedMsg:
		m.shifts = msg.shifts
		m.dir = msg.dir
		m.now = msg.now
		return m, nil

	case kioskErrMsg:
		m.err = msg.err
		m.notice = ""
		m.inputs[fieldPIN].SetValue("")
		return m, nil

	case kioskTickMsg:
		m.now = m.services.Session.Now()
		return m, m.tick()

	case ui.EntriesChangedMsg:
		m.mode = kioskModeIdle
		m.blurAll()
		m.err = nil
		m.notice = msg.Notice
		return m, m.loadShifts()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.mode != kioskModeIdle {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m KioskModel) openForm(mode kioskMode) (KioskModel, tea.Cmd) {
	m.mode = mode
	m.err = nil
	m.notice = ""
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	if mode == kioskModeIn {
		m.inputs[fieldExtra].Placeholder = "Project code"
	} else {
		m.inputs[fieldExtra].Placeholder = "Break minutes (optional)"
	}
	m.focus(fieldBadge)
	return m, textinput.Blink
}

func (m *KioskModel) focus(field int) {
	m.blurAll()
	m.focused = field
	m.inputs[field].Focus()
}

func (m *KioskModel) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// handleForm handles key events while a clock form is open
func (m KioskModel) handleForm(msg tea.KeyMsg) (KioskModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = kioskModeIdle
		m.blurAll()
		return m, nil
	case msg.String() == "tab", msg.String() == "down":
		m.focus((m.focused + 1) % fieldCount)
		return m, textinput.Blink
	case msg.String() == "shift+tab", msg.String() == "up":
		m.focus((m.focused - 1 + fieldCount) % fieldCount)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Select):
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m KioskModel) submit() (KioskModel, tea.Cmd) {
	badge := strings.TrimSpace(m.inputs[fieldBadge].Value())
	pin := strings.TrimSpace(m.inputs[fieldPIN].Value())
	extra := strings.TrimSpace(m.inputs[fieldExtra].Value())

	if badge == "" {
		m.focus(fieldBadge)
		return m, nil
	}

	if m.mode == kioskModeIn {
		if extra == "" {
			m.focus(fieldExtra)
			return m, nil
		}
		return m, m.clockIn(badge, pin, extra)
	}

	breakMinutes := 0
	if extra != "" {
		n, err := strconv.Atoi(extra)
		if err != nil {
			m.err = fmt.Errorf("break must be a whole number of minutes")
			m.focus(fieldExtra)
			return m, nil
		}
		breakMinutes = n
	}
	return m, m.clockOut(badge, pin, breakMinutes)
}

// View implements tea.Model
func (m KioskModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Kiosk"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	} else if m.notice != "" {
		b.WriteString(m.styles.Success.Render(m.notice))
		b.WriteString("\n\n")
	}

	if m.mode != kioskModeIdle {
		b.WriteString(m.renderForm())
		return b.String()
	}

	if len(m.shifts) == 0 {
		b.WriteString(m.styles.ClockedOut.Render("Nobody is clocked in"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Hint.Render("Press 'i' to clock in, 'o' to clock out"))
		return b.String()
	}

	b.WriteString(m.styles.ClockedIn.Render(fmt.Sprintf("● %d open %s", len(m.shifts), cli.Pluralize("shift", len(m.shifts)))))
	b.WriteString("\n\n")
	for _, sh := range m.shifts {
		elapsed := ""
		if !m.now.IsZero() && !sh.ClockedInAt.IsZero() {
			elapsed = "  " + cli.FormatMinutes(max(0, int(m.now.Sub(sh.ClockedInAt).Minutes())))
		}
		b.WriteString(fmt.Sprintf("  %-20s %s  since %s %s%s\n",
			truncate(m.dir.EmployeeName(sh.EmployeeID), 20),
			m.styles.EntryProject.Render(fmt.Sprintf("%-8s", m.dir.ProjectCode(sh.ProjectID))),
			m.styles.EntryDate.Render(sh.Date), sh.Start,
			m.styles.EntryHours.Render(elapsed)))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render("Press 'i' to clock in, 'o' to clock out"))
	return b.String()
}

func (m KioskModel) renderForm() string {
	var b strings.Builder

	title := "Clock in"
	extraLabel := "Project:"
	if m.mode == kioskModeOut {
		title = "Clock out"
		extraLabel = "Break:"
	}
	b.WriteString(m.styles.StatLabel.Render(title))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Badge:", "PIN:", extraLabel}
	for i, label := range labels {
		if i == m.focused {
			label = "▸ " + label
		}
		b.WriteString(m.styles.StatLabel.Render(label))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Hint.Render("Tab to switch fields, Enter to submit, Esc to cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *KioskModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when a clock form is open
func (m KioskModel) IsInputMode() bool {
	return m.mode != kioskModeIdle
}

// loadShifts creates a command to load the open shifts
func (m KioskModel) loadShifts() tea.Cmd {
	return func() tea.Msg {
		st := m.services.Session.Snapshot()
		return shiftsLoadedMsg{
			shifts: m.services.Kiosk.OpenShifts(),
			dir:    st.Directory(),
			now:    m.services.Session.Now(),
		}
	}
}

// clockIn creates a command that opens a shift
func (m KioskModel) clockIn(badge, pin, project string) tea.Cmd {
	return func() tea.Msg {
		shift, emp, err := m.services.Kiosk.ClockIn(badge, pin, project)
		if err != nil {
			return kioskErrMsg{err: err}
		}
		code := m.services.Session.Snapshot().Directory().ProjectCode(shift.ProjectID)
		return ui.EntriesChangedMsg{
			Notice: fmt.Sprintf("%s clocked in on %s at %s", emp.Name, code, shift.Start),
		}
	}
}

// clockOut creates a command that closes a shift into a pending entry
func (m KioskModel) clockOut(badge, pin string, breakMinutes int) tea.Cmd {
	return func() tea.Msg {
		e, err := m.services.Kiosk.ClockOut(badge, pin, breakMinutes)
		if err != nil {
			return kioskErrMsg{err: err}
		}
		return ui.EntriesChangedMsg{
			Notice: fmt.Sprintf("Clocked out: %s %s, %sh (id %s)",
				e.Date, cli.FormatTimes(e), cli.FormatHours(e.Hours), cli.ShortID(e.ID)),
		}
	}
}

// tick returns a command that refreshes elapsed times every minute
func (m KioskModel) tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return kioskTickMsg(t)
	})
}
