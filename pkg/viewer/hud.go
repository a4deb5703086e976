package viewer

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/meshview/pkg/render"
)

var (
	barStyle   = lipgloss.NewStyle().Background(lipgloss.Color("0"))
	fpsStyle   = barStyle.Foreground(lipgloss.Color("10"))
	titleStyle = barStyle.Foreground(lipgloss.Color("15")).Bold(true)
	countStyle = barStyle.Foreground(lipgloss.Color("14")).Bold(true)
	modeStyle  = barStyle.Foreground(lipgloss.Color("15"))
	hintStyle  = barStyle.Foreground(lipgloss.Color("11")).Faint(true)
)

// HUD renders an overlay with model info and toggles on the first and last
// terminal rows.
type HUD struct {
	status    Status
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// SetStatus replaces the displayed status.
func (h *HUD) SetStatus(s Status) {
	h.status = s
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Lines returns the styled top and bottom bars for a screen width columns wide.
func (h *HUD) Lines(width int) (top, bottom string) {
	s := h.status

	top = spread(width,
		fpsStyle.Render(fmt.Sprintf(" %.0f FPS ", h.fps)),
		titleStyle.Render(" "+s.Name+" "),
		countStyle.Render(fmt.Sprintf(" %d faces ", s.Faces)),
	)

	modes := fmt.Sprintf(" %s wireframe  %s cull  %s smooth ",
		check(s.Mode == render.ModeWireframe), check(s.Culling), check(s.Smooth))
	info := fmt.Sprintf(" zoom %.1f  %d drawn  ? hide ", s.Zoom, s.Stats.Drawn)
	bottom = spread(width, modeStyle.Render(modes), "", hintStyle.Render(info))

	return top, bottom
}

// Draw implements uv.Drawable.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle) {
	if !h.status.ShowHUD || area.Dy() < 1 {
		return
	}

	top, bottom := h.Lines(area.Dx())
	uv.NewStyledString(top).Draw(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1))
	if area.Dy() > 1 {
		uv.NewStyledString(bottom).Draw(scr, uv.Rect(area.Min.X, area.Max.Y-1, area.Dx(), 1))
	}
}

// spread lays left, mid and right across width columns with mid centred.
func spread(width int, left, mid, right string) string {
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)

	var b strings.Builder
	b.WriteString(left)
	midStart := max((width-mw)/2, lw)
	b.WriteString(gap(midStart - lw))
	b.WriteString(mid)
	b.WriteString(gap(width - midStart - mw - rw))
	b.WriteString(right)
	return b.String()
}

func gap(n int) string {
	if n <= 0 {
		return ""
	}
	return barStyle.Render(strings.Repeat(" ", n))
}

func check(on bool) string {
	if on {
		return "[✓]"
	}
	return "[ ]"
}

// String formats the status as one plain line.
func (s Status) String() string {
	cull := "off"
	if s.Culling {
		cull = "on"
	}
	return fmt.Sprintf("%s  %d faces  zoom %.1f  %s  cull %s", s.Name, s.Faces, s.Zoom, s.Mode, cull)
}
