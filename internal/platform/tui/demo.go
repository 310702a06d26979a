package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/touch-arcade/internal/catalog"
	"github.com/vovakirdan/touch-arcade/internal/compat"
	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/device"
	"github.com/vovakirdan/touch-arcade/internal/touch"
)

// Demo layout constants.
const (
	demoFPS    = 30
	statusRows = 6 // banner, held keys, recent events, hints, help, spacer
	minCanvasH = 4
)

// demoEnv carries the simulated device snapshot. It lives behind a
// pointer so the checker's snapshot source sees updates made by the
// model, which Bubble Tea passes around by value.
type demoEnv struct {
	snap device.Snapshot
}

// DemoModel is the Bubble Tea model for the interactive demo host. It
// wires the full pipeline: the probe surface plays the game page, the
// checker adapts the chosen game to the simulated device, and mouse
// input on the letterboxed game box acts as a single synthetic touch.
type DemoModel struct {
	checker *compat.Checker
	probe   *Probe
	canvas  *Canvas
	env     *demoEnv

	gameID string
	preset string
	report compat.Report
	cfg    catalog.GameConfig

	width     int
	height    int
	ready     bool
	mouseDown bool
	touchSeq  core.TouchID
	quitting  bool
}

// NewDemoModel builds the demo around a requirements registry, an
// adaptation catalog and a base device snapshot (screen dimensions are
// replaced by the live terminal box). The preset name is display-only.
func NewDemoModel(reqs *compat.Registry, cat *catalog.Catalog, snap device.Snapshot, preset, gameID string) DemoModel {
	env := &demoEnv{snap: snap}
	checker := compat.NewChecker(reqs, cat,
		func() device.Snapshot { return env.snap },
		// Bubble Tea owns the terminal; checker output would tear the
		// view apart.
		compat.WithLogger(log.New(io.Discard)),
	)
	return DemoModel{
		checker: checker,
		probe:   NewProbe(0, 0),
		canvas:  NewCanvas(0, 0),
		env:     env,
		gameID:  gameID,
		preset:  preset,
	}
}

// Init starts the refresh loop.
func (m DemoModel) Init() tea.Cmd {
	return tickCmd(demoFPS)
}

// Update handles messages and updates the model state.
func (m DemoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m, tickCmd(demoFPS)
	}

	return m, nil
}

// handleKey processes the demo hotkeys.
func (m DemoModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.checker.Adapter().Cleanup()
		m.quitting = true
		return m, tea.Quit

	case "g":
		a := m.checker.Adapter()
		if !a.Attached() {
			return m, nil
		}
		if a.GesturesEnabled() {
			// Attaching again resets the gesture flag.
			//nolint:errcheck // surface already validated by the attach before
			a.Attach(m.probe, m.cfg)
		} else {
			//nolint:errcheck // attached above
			a.EnableGestures()
		}
		return m, nil

	case "o":
		m.env.snap.ScreenW, m.env.snap.ScreenH = m.env.snap.ScreenH, m.env.snap.ScreenW
		m.runAdapt()
		return m, nil

	case "m":
		m.cfg.Scale = nextScaleMode(m.cfg.Scale)
		if m.checker.Adapter().Attached() {
			//nolint:errcheck // surface already validated by the attach before
			m.checker.Adapter().Attach(m.probe, m.cfg)
		}
		return m, nil

	case "c":
		m.runAdapt()
		return m, nil
	}

	return m, nil
}

// handleMouse turns the left button into a single synthetic touch.
func (m DemoModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}

	pos := core.Point{X: float64(msg.X), Y: float64(msg.Y)}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.touchSeq++
		m.mouseDown = true
		m.sendTouch(core.TouchBegin, pos)

	case tea.MouseActionMotion:
		if !m.mouseDown {
			return m, nil
		}
		m.sendTouch(core.TouchMove, pos)

	case tea.MouseActionRelease:
		if !m.mouseDown {
			return m, nil
		}
		m.mouseDown = false
		m.sendTouch(core.TouchEnd, pos)
	}

	return m, nil
}

func (m *DemoModel) sendTouch(phase core.TouchPhase, pos core.Point) {
	m.checker.Adapter().HandleTouch(core.TouchEvent{
		ID:    m.touchSeq,
		Pos:   pos,
		Phase: phase,
		Time:  time.Now(),
	})
}

// handleResize fits the canvas to the terminal and re-runs the
// pipeline against the new surface box.
func (m DemoModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	canvasH := max(msg.Height-statusRows, minCanvasH)
	m.canvas.Resize(msg.Width, canvasH)
	m.probe.Resize(msg.Width, canvasH)
	m.env.snap.ScreenW = msg.Width
	m.env.snap.ScreenH = canvasH

	if !m.ready {
		m.ready = true
		m.runAdapt()
	} else {
		m.report = m.checker.Check(m.gameID)
		m.checker.Adapter().HandleResize(msg.Width, canvasH)
	}
	return m, nil
}

// runAdapt runs the full check-and-adapt pipeline against the probe.
// Games without a controls issue never attach through Adapt, but the
// demo always wants the overlays on screen, so it falls back to the
// controls-only entry point.
func (m *DemoModel) runAdapt() {
	cfg, report, err := m.checker.Adapt(m.gameID, m.probe)
	if err != nil {
		// Only reachable with a nil surface; keep the old state.
		return
	}
	m.cfg = cfg
	m.report = report

	if !m.checker.Adapter().Attached() {
		if cfg, err := m.checker.AdaptControls(m.gameID, m.probe); err == nil {
			m.cfg = cfg
		}
	}
}

func nextScaleMode(s catalog.ScaleMode) catalog.ScaleMode {
	switch s {
	case catalog.ScaleFit:
		return catalog.ScaleFill
	case catalog.ScaleFill:
		return catalog.ScaleStretch
	default:
		return catalog.ScaleFit
	}
}

// View renders the letterboxed game box, the control overlays and the
// status strip.
func (m DemoModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "measuring terminal..."
	}

	m.drawCanvas()

	var b strings.Builder
	b.WriteString(RenderCanvas(m.canvas))
	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

// drawCanvas paints the viewport frame and the control overlays.
func (m DemoModel) drawCanvas() {
	m.canvas.Clear()

	a := m.checker.Adapter()
	vp, ok := a.Viewport()
	if !ok {
		m.canvas.DrawTextCentered(m.canvas.Height()/2, "not attached", ColorGray)
		return
	}

	sr := vp.SurfaceRect()
	m.canvas.FillRect(int(sr.X), int(sr.Y), int(sr.W), int(sr.H), '·', ColorGray)
	m.canvas.DrawBox(int(sr.X), int(sr.Y), int(sr.W), int(sr.H), ColorWhite)

	for _, o := range a.Overlays() {
		m.drawOverlay(o)
	}
}

func (m DemoModel) drawOverlay(o touch.OverlayView) {
	x, y := int(o.Rect.X), int(o.Rect.Y)
	w, h := int(o.Rect.W), int(o.Rect.H)

	col := ColorCyan
	if o.Pressed {
		col = ColorBrightYellow
	}

	switch o.Kind {
	case catalog.ControlJoystick:
		m.canvas.DrawBox(x, y, w, h, col)
		cx := x + w/2 + int(o.Knob.X)
		cy := y + h/2 + int(o.Knob.Y)
		knob := '○'
		if o.Pressed {
			knob = '●'
		}
		m.canvas.Set(cx, cy, knob, ColorBrightYellow)

	case catalog.ControlButton:
		m.canvas.DrawBox(x, y, w, h, col)
		m.canvas.DrawText(x+max((w-len(o.Label))/2, 1), y+h/2, o.Label, col)

	default: // tap and swipe zones
		m.canvas.DrawBox(x, y, w, h, ColorGray)
		m.canvas.DrawText(x+1, y, " "+o.Label+" ", ColorGray)
	}
}

// statusView builds the strip below the canvas: compat banner, held
// keys, recent transitions, hints and the hotkey help line.
func (m DemoModel) statusView() string {
	okStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	badStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	verdict := okStyle.Render(fmt.Sprintf("score %d", m.report.Score))
	if !m.report.Compatible {
		verdict = badStyle.Render(fmt.Sprintf("score %d (incompatible)", m.report.Score))
	}
	banner := fmt.Sprintf("%s on %s (%s) · %s · %d issues",
		m.gameID, m.preset, m.report.Profile.Class(), verdict, len(m.report.Issues))

	held := "held: -"
	if keys := m.probe.HeldKeys(); len(keys) > 0 {
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = string(k)
		}
		held = "held: " + strings.Join(parts, " ")
	}

	recent := "keys: -"
	if events := m.probe.Recent(); len(events) > 0 {
		recent = "keys: " + strings.Join(events, "  ")
	}

	hints := m.probe.HintLine()
	if hints == "" {
		hints = "-"
	}

	lines := []string{
		banner,
		held,
		recent,
		"hints: " + hints,
		dimStyle.Render("q quit · g gestures · o rotate · m scale mode · c re-check"),
	}
	return strings.Join(lines, "\n")
}

// RunDemo starts the demo host for one game.
func RunDemo(reqs *compat.Registry, cat *catalog.Catalog, snap device.Snapshot, preset, gameID string) error {
	model := NewDemoModel(reqs, cat, snap, preset, gameID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
