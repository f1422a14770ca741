package cli

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/photogrid/internal/config"
	"github.com/matzehuels/photogrid/pkg/gallery"
	"github.com/matzehuels/photogrid/pkg/pagination"
	"github.com/matzehuels/photogrid/pkg/photo"
	"github.com/matzehuels/photogrid/pkg/visibility"
)

// Grid styles
var (
	tileStyle   = lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
	tileIDStyle = lipgloss.NewStyle().Foreground(colorGray)
	loaderStyle = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
	endStyle    = lipgloss.NewStyle().Foreground(colorGreen)
	statusStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerHelp  = lipgloss.NewStyle().Foreground(colorDim)
	tilePalette = []lipgloss.Color{"24", "25", "29", "30", "53", "54", "58", "60", "88", "94", "95", "237"}
)

// chromeHeight is the number of lines outside the viewport: header and status.
const chromeHeight = 2

// frameMsg tells the model a new gallery frame was published.
type frameMsg struct{}

// =============================================================================
// browseModel - Infinite photo grid
// =============================================================================

// browseModel is the bubbletea model for the grid browser.
//
// Layout units are logical pixels: one column is pxPerCell, one line linePx.
// The gallery publishes frames from its own goroutines; the model is told via
// a one-slot channel and reads the latest frame on the event loop.
type browseModel struct {
	ctx      context.Context
	gallery  *gallery.Gallery
	scroller *visibility.Scroller
	sentinel *visibility.Marker
	frames   chan struct{}

	frame    gallery.Frame
	viewport viewport.Model
	spinner  spinner.Model

	pxPerCell int
	linePx    int
	gap       int
	started   bool
	width     int
	height    int
}

func newBrowseModel(ctx context.Context, fetcher pagination.Fetcher, cfg config.Config, logger *log.Logger, opts ...gallery.Option) *browseModel {
	m := &browseModel{
		ctx:       ctx,
		scroller:  visibility.NewScroller(visibility.Viewport{}),
		sentinel:  visibility.NewMarker(visibility.Rect{}),
		frames:    make(chan struct{}, 1),
		viewport:  viewport.New(0, 0),
		pxPerCell: cfg.PxPerCell,
		linePx:    cfg.LinePx,
		gap:       cfg.Gap,
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styleIconSpinner
	m.spinner = spin

	base := []gallery.Option{
		gallery.WithLayout(cfg.Layout(0)),
		gallery.WithPageSize(cfg.PageSize),
		gallery.WithMargin(cfg.Margin),
		gallery.WithLogger(logger),
		gallery.WithRender(m.onFrame),
	}
	m.gallery = gallery.New(fetcher, m.scroller, m.sentinel, append(base, opts...)...)
	return m
}

// onFrame runs on the goroutine that published f. It moves the sentinel
// below the last row before the gallery re-arms its trigger.
func (m *browseModel) onFrame(f gallery.Frame) {
	m.sentinel.Set(visibility.Rect{Top: m.contentLines(f.Rows) * m.linePx, Height: m.linePx})
	select {
	case m.frames <- struct{}{}:
	default:
	}
}

func (m *browseModel) waitForFrame() tea.Msg {
	select {
	case <-m.frames:
		return frameMsg{}
	case <-m.ctx.Done():
		return nil
	}
}

func (m *browseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForFrame)
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 1)
		m.gallery.Resize(msg.Width*m.pxPerCell, m.viewport.Height*m.linePx)
		if !m.started {
			m.started = true
			m.gallery.Start(m.ctx)
		}
		m.frame = m.gallery.Frame()
		m.refresh()
		return m, nil

	case frameMsg:
		m.frame = m.gallery.Frame()
		m.refresh()
		return m, m.waitForFrame

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.frame.Loading {
			m.refresh()
		}
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "g", "home":
			m.viewport.GotoTop()
			m.syncViewport()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			m.syncViewport()
			return m, nil
		case "r":
			return m, m.loadMore
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.syncViewport()
	return m, cmd
}

// loadMore requests the next page outside the event loop.
func (m *browseModel) loadMore() tea.Msg {
	m.gallery.LoadMore(m.ctx)
	return nil
}

// refresh re-renders the grid into the viewport and reports the viewport
// position, which also re-evaluates the moved sentinel.
func (m *browseModel) refresh() {
	m.viewport.SetContent(m.renderGrid())
	m.syncViewport()
}

func (m *browseModel) syncViewport() {
	m.scroller.SetViewport(visibility.Viewport{
		Top:    m.viewport.YOffset * m.linePx,
		Height: m.viewport.Height * m.linePx,
	})
}

func (m *browseModel) View() string {
	if m.width == 0 {
		return m.spinner.View() + " Starting..."
	}
	var b strings.Builder
	b.WriteString(StyleTitle.Render(appName))
	b.WriteString("  ")
	b.WriteString(headerHelp.Render("j/k scroll · g/G top/bottom · r load · q quit"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m *browseModel) statusLine() string {
	f := m.frame
	parts := []string{
		fmt.Sprintf("%d photos", f.Photos),
		fmt.Sprintf("%d rows", len(f.Rows)),
		fmt.Sprintf("page %d", f.Page),
		fmt.Sprintf("%dpx", f.Width),
		fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100)),
	}
	return statusStyle.Render(" " + strings.Join(parts, " · "))
}

// =============================================================================
// Grid Rendering
// =============================================================================

func (m *browseModel) rowLines(r photo.Row) int {
	return max((r.Height+m.linePx/2)/m.linePx, 1)
}

func (m *browseModel) gapLines() int {
	return (max(m.gap, 0) + m.linePx/2) / m.linePx
}

func (m *browseModel) gapCols() int {
	if m.gap <= 0 {
		return 0
	}
	return max((m.gap+m.pxPerCell/2)/m.pxPerCell, 1)
}

// contentLines returns the number of lines the rows occupy.
func (m *browseModel) contentLines(rows []photo.Row) int {
	if len(rows) == 0 {
		return 0
	}
	n := m.gapLines() * (len(rows) - 1)
	for _, r := range rows {
		n += m.rowLines(r)
	}
	return n
}

func (m *browseModel) renderGrid() string {
	var lines []string
	gapLine := strings.Repeat("\n", m.gapLines())
	spacer := strings.Repeat(" ", m.gapCols())

	for i, r := range m.frame.Rows {
		h := m.rowLines(r)
		tiles := make([]string, 0, 2*len(r.Photos))
		for j, p := range r.Photos {
			if j > 0 && spacer != "" {
				tiles = append(tiles, spacer)
			}
			tiles = append(tiles, m.renderTile(p, h))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
		if gapLine != "" && i < len(m.frame.Rows)-1 {
			lines = append(lines, strings.TrimSuffix(gapLine, "\n"))
		}
	}

	lines = append(lines, m.loaderLine())
	return strings.Join(lines, "\n")
}

// renderTile draws p as a solid block sized to its display dimensions.
func (m *browseModel) renderTile(p photo.Photo, height int) string {
	cols := max(p.DisplayWidth/m.pxPerCell, 1)
	label := p.Author
	if label == "" {
		label = "unknown"
	}
	body := label + "\n" + tileIDStyle.Render(fmt.Sprintf("#%s %dx%d", p.ID, p.DisplayWidth, p.DisplayHeight))
	return tileStyle.
		Width(cols).
		MaxWidth(cols).
		Height(height).
		MaxHeight(height).
		Background(tileColor(p.ID)).
		Render(body)
}

// loaderLine is the sentinel region below the last row.
func (m *browseModel) loaderLine() string {
	switch status := m.frame.Status(); {
	case m.frame.Loading:
		return m.spinner.View() + " " + loaderStyle.Render(status)
	case status != "":
		return endStyle.Render(status)
	default:
		return ""
	}
}

func tileColor(id string) lipgloss.Color {
	h := fnv.New32a()
	h.Write([]byte(id))
	return tilePalette[h.Sum32()%uint32(len(tilePalette))]
}
