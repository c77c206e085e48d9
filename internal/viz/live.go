package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/aerosim/internal/aircraft"
	"github.com/san-kum/aerosim/internal/config"
	"github.com/san-kum/aerosim/internal/control"
	"github.com/san-kum/aerosim/internal/flight"
)

const (
	canvasWidth     = 60
	canvasHeight    = 20
	historyCapacity = 120
	trailCapacity   = 200
	frameRate       = 30

	stickStep    = 0.05
	throttleStep = 0.05
)

type TickMsg time.Time

type screen int

const (
	screenMenu screen = iota
	screenFlight
)

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live flight view. It starts on the preset menu unless built
// with Fly.
type Model struct {
	screen  screen
	presets []string
	cursor  int

	cfg   *config.Config
	sim   *flight.Simulator
	stick *control.Manual
	k, k0 aircraft.Kinematics
	last  flight.Sample

	running  bool
	showHelp bool
	crashed  bool
	err      error

	theme     Theme
	styles    Styles
	canvas    *Canvas
	camera    *Camera
	trail     []mgl64.Vec3
	altHist   []float64
	speedHist []float64
}

func NewModel() Model {
	return Model{
		screen:  screenMenu,
		presets: config.ListPresets(),
		theme:   ThemeCockpit,
		styles:  NewStyles(ThemeCockpit),
		canvas:  NewCanvas(canvasWidth, canvasHeight),
		camera:  NewCamera(),
	}
}

// Fly switches m to the flight screen for cfg. The configured pilot is
// replaced by a manual stick driven from the keyboard.
func (m Model) Fly(cfg *config.Config) (Model, error) {
	c := *cfg
	c.Pilot.Kind = "manual"
	sim, k0, err := c.Build()
	if err != nil {
		return m, err
	}
	stick, ok := sim.Pilot().(*control.Manual)
	if !ok {
		return m, fmt.Errorf("pilot %T is not a manual stick", sim.Pilot())
	}

	m.screen = screenFlight
	m.cfg = &c
	m.sim = sim
	m.stick = stick
	m.k0 = k0
	m.reset()
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == screenMenu {
			return m.updateMenu(msg)
		}
		return m.updateFlight(msg)
	case TickMsg:
		if m.screen == screenFlight && m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.presets) == 0 {
			return m, nil
		}
		next, err := m.Fly(config.GetPreset(m.presets[m.cursor]))
		if err != nil {
			m.err = err
			return m, nil
		}
		next.err = nil
		return next, nil
	case "t":
		m.cycleTheme()
	}
	return m, nil
}

func (m Model) updateFlight(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.screen = screenMenu
		m.running = false
	case " ":
		m.running = !m.running
	case "r":
		m.reset()
	case "w":
		m.stick.Nudge(control.Controls{Pitch: -stickStep})
	case "s":
		m.stick.Nudge(control.Controls{Pitch: stickStep})
	case "a":
		m.stick.Nudge(control.Controls{Roll: -stickStep})
	case "d":
		m.stick.Nudge(control.Controls{Roll: stickStep})
	case "z":
		m.stick.Nudge(control.Controls{Yaw: -stickStep})
	case "c":
		m.stick.Nudge(control.Controls{Yaw: stickStep})
	case "+", "=":
		m.stick.Nudge(control.Controls{Throttle: throttleStep})
	case "-", "_":
		m.stick.Nudge(control.Controls{Throttle: -throttleStep})
	case "x":
		cur := m.stick.Compute(&m.k, m.sim.Time())
		m.stick.Set(control.Controls{Throttle: cur.Throttle})
	case "[":
		m.camera.Orbit(-0.1)
	case "]":
		m.camera.Orbit(0.1)
	case ",":
		m.camera.ZoomOut()
	case ".":
		m.camera.ZoomIn()
	case "t":
		m.cycleTheme()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) cycleTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == m.theme.Name {
			m.theme = GetTheme(names[(i+1)%len(names)])
			break
		}
	}
	m.styles = NewStyles(m.theme)
}

// step advances one frame of wall time in ticks of the configured dt.
func (m *Model) step() {
	dt := m.cfg.Sim.Dt
	substeps := max(1, int(1.0/frameRate/dt))

	for i := 0; i < substeps; i++ {
		m.last = m.sim.Step(&m.k, dt)
		if err := m.k.Validate(); err != nil {
			m.err = err
			m.running = false
			return
		}
		if m.k.Position.Y() < 0 {
			m.crashed = true
			m.running = false
			return
		}
	}

	m.trail = appendCapped(m.trail, m.k.Position, trailCapacity)
	m.altHist = appendCapped(m.altHist, m.k.Position.Y(), historyCapacity)
	m.speedHist = appendCapped(m.speedHist, m.last.Airspeed, historyCapacity)
}

func (m *Model) reset() {
	m.k = m.k0
	m.sim.Reset()
	m.stick.Set(control.Controls{
		Pitch:    m.cfg.Pilot.Pitch,
		Yaw:      m.cfg.Pilot.Yaw,
		Roll:     m.cfg.Pilot.Roll,
		Throttle: m.cfg.Pilot.Throttle,
	})
	m.last = flight.Sample{Position: m.k.Position, Rotation: m.k.Rotation, Velocity: m.k.Velocity}
	m.trail = m.trail[:0]
	m.altHist = m.altHist[:0]
	m.speedHist = m.speedHist[:0]
	m.running = true
	m.crashed = false
	m.err = nil
}

func appendCapped[T any](s []T, v T, capacity int) []T {
	if len(s) >= capacity {
		s = append(s[:0], s[1:]...)
	}
	return append(s, v)
}

func (m Model) View() string {
	if m.screen == screenMenu {
		return m.menuView()
	}
	return m.flightView()
}

func (m Model) menuView() string {
	st := m.styles
	var s strings.Builder
	s.WriteString(st.Title.Render("AEROSIM") + "\n\n")
	s.WriteString(st.Label.Render("Select an airframe") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			s.WriteString(st.Focus.Render("> "+name) + "\n")
		} else {
			s.WriteString(st.Menu.Render("  "+name) + "\n")
		}
	}
	if m.err != nil {
		s.WriteString("\n" + st.Alert.Render(m.err.Error()) + "\n")
	}
	s.WriteString("\n" + st.Hint.Render("↑↓:Select  Enter:Fly  T:Theme  Q:Quit"))
	return st.Panel.Render(s.String())
}

func (m Model) flightView() string {
	st := m.styles
	Render(m.canvas, m.camera, m.sim.Aggregator(), &m.k, m.trail)
	canvasView := st.Panel.Render(m.canvas.String())

	status := st.Running.Render("FLYING")
	switch {
	case m.err != nil:
		status = st.Alert.Render("DIVERGED: " + m.err.Error())
	case m.crashed:
		status = st.Alert.Render("CRASHED")
	case !m.running:
		status = st.Paused.Render("PAUSED")
	}

	c := m.stick.Compute(&m.k, m.sim.Time())
	row := func(label, value string) string {
		return st.Label.Render(fmt.Sprintf("%-9s", label)) + st.Value.Render(value) + "\n"
	}

	var s strings.Builder
	s.WriteString(st.Title.Render(strings.ToUpper(m.cfg.Name)) + "  " + status + "\n\n")
	s.WriteString(row("Time", fmt.Sprintf("%.2fs", m.sim.Time())))
	s.WriteString(row("ALT", fmt.Sprintf("%.1f m", m.k.Position.Y())))
	s.WriteString(row("Airspeed", fmt.Sprintf("%.1f m/s", m.last.Airspeed)))
	s.WriteString(row("AoA", fmt.Sprintf("%.1f°", mgl64.RadToDeg(m.last.AngleOfAttack))))
	s.WriteString(row("Load", fmt.Sprintf("%.2f g", m.last.LoadFactor)))
	stall := fmt.Sprintf("%d/%d", m.last.Stalled, m.last.Surfaces)
	if m.last.Stalled > 0 {
		s.WriteString(st.Label.Render(fmt.Sprintf("%-9s", "Stalled")) + st.Alert.Render(stall) + "\n")
	} else {
		s.WriteString(row("Stalled", stall))
	}
	if mx := m.sim.Mixer(); mx != nil {
		s.WriteString(row("Bound", fmt.Sprintf("%d surfaces", mx.Len())))
		s.WriteString(row("Effort", fmt.Sprintf("%.3f", mx.Last().Effort())))
	}
	s.WriteString("\n")
	s.WriteString(row("Throttle", Bar(c.Throttle, 10)))
	s.WriteString(row("Pitch", CenterBar(c.Pitch, 10)))
	s.WriteString(row("Roll", CenterBar(c.Roll, 10)))
	s.WriteString(row("Yaw", CenterBar(c.Yaw, 10)))

	if len(m.altHist) > 1 {
		s.WriteString("\n" + asciigraph.Plot(m.altHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Altitude")) + "\n")
		s.WriteString("\n" + asciigraph.Plot(m.speedHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Airspeed")) + "\n")
	}
	s.WriteString("\n" + st.Hint.Render("WASD:Stick Z/C:Yaw +/-:Throttle\nSP:Pause R:Reset ?:Help Esc:Menu"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.Panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  W/S      - Pitch down/up            ║
║  A/D      - Roll left/right          ║
║  Z/C      - Yaw left/right           ║
║  +/-      - Throttle up/down         ║
║  X        - Center the stick         ║
║  [ ]      - Orbit camera             ║
║  , .      - Zoom out/in              ║
║  Space    - Pause/Resume             ║
║  R        - Reset flight             ║
║  T        - Cycle themes             ║
║  Esc      - Back to menu             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
