package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlihgenel/videoedit-cli/internal/playback"
	"github.com/mlihgenel/videoedit-cli/internal/timeline"
)

// ========================================
// Renk Paleti ve Stiller
// ========================================

var (
	primaryColor   = lipgloss.Color("#7C3AED") // Mor
	secondaryColor = lipgloss.Color("#06B6D4") // Cyan
	accentColor    = lipgloss.Color("#10B981") // Yeşil
	warningColor   = lipgloss.Color("#F59E0B") // Sarı
	dangerColor    = lipgloss.Color("#EF4444") // Kırmızı
	dimTextColor   = lipgloss.Color("#64748B") // Koyu gri

	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 2).
			MarginBottom(1)

	dimStyle     = lipgloss.NewStyle().Foreground(dimTextColor)
	infoStyle    = lipgloss.NewStyle().Foreground(secondaryColor)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(dangerColor)
	markerStyle  = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	keptStyle    = lipgloss.NewStyle().Foreground(accentColor)
	removedStyle = lipgloss.NewStyle().Foreground(dangerColor)
)

var timelineSteps = []time.Duration{
	100 * time.Millisecond,
	500 * time.Millisecond,
	time.Second,
	2 * time.Second,
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
	time.Minute,
}

func increaseTimelineStep(current time.Duration) time.Duration {
	for _, s := range timelineSteps {
		if current < s {
			return s
		}
	}
	return timelineSteps[len(timelineSteps)-1]
}

func decreaseTimelineStep(current time.Duration) time.Duration {
	for i := len(timelineSteps) - 1; i >= 0; i-- {
		if current > timelineSteps[i] {
			return timelineSteps[i]
		}
	}
	return timelineSteps[0]
}

type editKeyMap struct {
	Back     key.Binding
	Forward  key.Binding
	Start    key.Binding
	End      key.Binding
	StepDown key.Binding
	StepUp   key.Binding
	MarkIn   key.Binding
	MarkOut  key.Binding
	Clear    key.Binding
	Delete   key.Binding
	Undo     key.Binding
	Redo     key.Binding
	Play     key.Binding
	Export   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Forward, k.MarkIn, k.MarkOut, k.Delete, k.Undo, k.Redo, k.Play, k.Export, k.Help, k.Quit}
}

func (k editKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Back, k.Forward, k.Start, k.End, k.StepDown, k.StepUp},
		{k.MarkIn, k.MarkOut, k.Clear, k.Delete},
		{k.Undo, k.Redo, k.Play, k.Export},
		{k.Help, k.Quit},
	}
}

var editKeys = editKeyMap{
	Back:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "geri")),
	Forward:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "ileri")),
	Start:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "başa git")),
	End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "sona git")),
	StepDown: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "adım azalt")),
	StepUp:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "adım artır")),
	MarkIn:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "giriş işareti")),
	MarkOut:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "çıkış işareti")),
	Clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "işaretleri temizle")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "aralığı sil")),
	Undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "geri al")),
	Redo:     key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "yinele")),
	Play:     key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "oynat/durdur")),
	Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "dışa aktar")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "yardım")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "çık")),
}

type playTickMsg time.Time

type exportDoneMsg struct {
	out exportOutcome
	err error
}

// editModel tek bir videonun etkileşimli düzenleme ekranıdır. Oynatma kafası
// sanal zamandadır.
type editModel struct {
	ctx      context.Context
	input    string
	manager  *timeline.Manager
	source   time.Duration
	settings exportSettings

	playhead time.Duration
	step     time.Duration
	markIn   time.Duration
	markOut  time.Duration
	hasIn    bool
	hasOut   bool
	edits    []string

	transport *playback.SimulatedTransport
	monitor   *playback.Monitor
	playing   bool

	exporting bool
	spinner   spinner.Model
	help      help.Model
	keys      editKeyMap

	width     int
	status    string
	statusErr bool
	lastOut   string
}

func newEditModel(ctx context.Context, input string, m *timeline.Manager, settings exportSettings, step time.Duration) editModel {
	if step <= 0 {
		step = time.Second
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(secondaryColor)

	transport := playback.NewSimulatedTransport(m.SourceDuration())
	return editModel{
		ctx:       ctx,
		input:     input,
		manager:   m,
		source:    m.SourceDuration(),
		settings:  settings,
		step:      step,
		transport: transport,
		monitor:   playback.NewMonitor(transport, m),
		spinner:   sp,
		help:      help.New(),
		keys:      editKeys,
	}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func playTick() tea.Cmd {
	return tea.Tick(playback.DefaultInterval, func(t time.Time) tea.Msg {
		return playTickMsg(t)
	})
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case playTickMsg:
		if !m.playing {
			return m, nil
		}
		m = m.advancePlayback(playback.DefaultInterval)
		if !m.playing {
			return m, nil
		}
		return m, playTick()

	case spinner.TickMsg:
		if !m.exporting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.setError("Dışa aktarma başarısız: " + msg.err.Error())
			return m, nil
		}
		m.lastOut = msg.out.Output()
		if msg.out.Result.Skipped {
			m.setStatus("Çıktı zaten var, atlandı: " + m.lastOut)
		} else {
			m.setStatus("Dışa aktarıldı: " + m.lastOut)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m editModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.transport.Pause()
		return m, tea.Quit
	}
	if m.exporting {
		return m, nil
	}

	total := m.manager.Current().TotalDuration()
	switch {
	case key.Matches(msg, m.keys.Back):
		m.seek(m.playhead - m.step)
	case key.Matches(msg, m.keys.Forward):
		m.seek(m.playhead + m.step)
	case key.Matches(msg, m.keys.Start):
		m.seek(0)
	case key.Matches(msg, m.keys.End):
		m.seek(total)
	case key.Matches(msg, m.keys.StepDown):
		m.step = decreaseTimelineStep(m.step)
	case key.Matches(msg, m.keys.StepUp):
		m.step = increaseTimelineStep(m.step)
	case key.Matches(msg, m.keys.MarkIn):
		m.markIn, m.hasIn = m.playhead, true
		m.setStatus("Giriş: " + timeline.FormatTimecode(m.markIn))
	case key.Matches(msg, m.keys.MarkOut):
		m.markOut, m.hasOut = m.playhead, true
		m.setStatus("Çıkış: " + timeline.FormatTimecode(m.markOut))
	case key.Matches(msg, m.keys.Clear):
		m.hasIn, m.hasOut = false, false
		m.setStatus("İşaretler temizlendi")
	case key.Matches(msg, m.keys.Delete):
		m.deleteMarked()
	case key.Matches(msg, m.keys.Undo):
		if m.manager.Undo() {
			m.edits = append(m.edits, "undo")
			m.afterEdit("Geri alındı")
		} else {
			m.setError("Geri alınacak işlem yok")
		}
	case key.Matches(msg, m.keys.Redo):
		if m.manager.Redo() {
			m.edits = append(m.edits, "redo")
			m.afterEdit("Yinelendi")
		} else {
			m.setError("Yinelenecek işlem yok")
		}
	case key.Matches(msg, m.keys.Play):
		return m.togglePlayback()
	case key.Matches(msg, m.keys.Export):
		return m.startExport()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *editModel) seek(v time.Duration) {
	total := m.manager.Current().TotalDuration()
	m.playhead = min(max(v, 0), total)
	if m.playing {
		m.transport.Seek(m.manager.Current().VirtualToSource(m.playhead))
	}
}

func (m *editModel) deleteMarked() {
	if !m.hasIn || !m.hasOut {
		m.setError("Önce i ve o ile bir aralık işaretleyin")
		return
	}
	start, end := min(m.markIn, m.markOut), max(m.markIn, m.markOut)
	if err := m.manager.Apply(timeline.DeleteCommand{Start: start, End: end}); err != nil {
		m.setError(err.Error())
		return
	}
	m.edits = append(m.edits, fmt.Sprintf("delete virtual %s -> %s", timeline.FormatTimecode(start), timeline.FormatTimecode(end)))
	m.hasIn, m.hasOut = false, false
	m.playhead = start
	m.afterEdit(fmt.Sprintf("Silindi: %s -> %s", timeline.FormatTimecode(start), timeline.FormatTimecode(end)))
}

// afterEdit liste değiştikten sonra oynatma kafasını yeni sınırlara çeker.
func (m *editModel) afterEdit(status string) {
	total := m.manager.Current().TotalDuration()
	m.playhead = min(m.playhead, total)
	if m.hasIn {
		m.markIn = min(m.markIn, total)
	}
	if m.hasOut {
		m.markOut = min(m.markOut, total)
	}
	if m.playing {
		m.transport.Seek(m.manager.Current().VirtualToSource(m.playhead))
	}
	m.setStatus(status)
}

func (m editModel) togglePlayback() (tea.Model, tea.Cmd) {
	if m.playing {
		m.transport.Pause()
		m.playing = false
		m.setStatus("Durduruldu")
		return m, nil
	}

	list := m.manager.Current()
	if m.playhead >= list.TotalDuration() {
		m.playhead = 0
	}
	m.transport.Seek(list.VirtualToSource(m.playhead))
	m.transport.Play()
	if !m.transport.Playing() {
		m.setError("Oynatılacak içerik yok")
		return m, nil
	}
	m.playing = true
	m.setStatus("Oynatılıyor")
	return m, playTick()
}

// advancePlayback saati d kadar ilerletir; silinmiş bölgeler monitor
// tarafından atlanır.
func (m editModel) advancePlayback(d time.Duration) editModel {
	m.transport.Advance(d)
	ev := m.monitor.Check()

	list := m.manager.Current()
	pos := m.transport.Position()
	if v, ok := list.SourceToVirtual(pos); ok {
		m.playhead = v
	} else {
		m.playhead = min(list.VirtualOffset(pos), list.TotalDuration())
	}

	if ev.Kind == playback.EventEnded || !m.transport.Playing() {
		m.playing = false
		m.playhead = list.TotalDuration()
		m.setStatus("Oynatma bitti")
	}
	return m
}

func (m editModel) startExport() (tea.Model, tea.Cmd) {
	if m.playing {
		m.transport.Pause()
		m.playing = false
	}
	m.exporting = true
	m.setStatus("Dışa aktarılıyor...")

	ctx := m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	job := exportJob{
		Input:          m.input,
		SourceDuration: m.source,
		List:           m.manager.Current(),
		Edits:          append([]string(nil), m.edits...),
		EDLPath:        editFlags.edl,
		ReportPath:     editFlags.reportFile,
	}
	settings := m.settings
	run := func() tea.Msg {
		out, err := runExport(ctx, job, settings, nil)
		return exportDoneMsg{out: out, err: err}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m *editModel) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *editModel) setError(s string) {
	m.status, m.statusErr = s, true
}

func (m editModel) View() string {
	var b strings.Builder
	list := m.manager.Current()
	total := list.TotalDuration()
	undo, redo := m.manager.HistoryDepth()

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Video Düzenleyici "))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("  Dosya: %s", filepath.Base(m.input))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Kaynak: %s  •  Düzenlenmiş: %s  •  Segment: %d  •  Geçmiş: %d/%d",
		timeline.FormatTimecode(m.source), timeline.FormatTimecode(total), list.Len(), undo, redo)))
	b.WriteString("\n\n")

	barWidth := 64
	if m.width > 0 && m.width < 90 {
		barWidth = 42
	}
	b.WriteString(dimStyle.Render("  Sanal  "))
	b.WriteString(m.virtualBar(barWidth))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Kaynak "))
	b.WriteString(m.sourceBar(barWidth))
	b.WriteString("\n\n")

	state := "⏸"
	if m.playing {
		state = "▶"
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("  %s Konum: %s  (kaynak %s)", state,
		timeline.FormatTimecode(m.playhead), timeline.FormatTimecode(list.VirtualToSource(m.playhead)))))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("  Giriş: %s  •  Çıkış: %s", m.markLabel(m.hasIn, m.markIn), m.markLabel(m.hasOut, m.markOut))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Adım: %s", m.step)))
	b.WriteString("\n\n")

	switch {
	case m.exporting:
		b.WriteString(fmt.Sprintf("  %s %s", m.spinner.View(), m.status))
	case m.status != "" && m.statusErr:
		b.WriteString(errorStyle.Render("  Hata: " + m.status))
	case m.status != "":
		b.WriteString(successStyle.Render("  " + m.status))
	}
	b.WriteString("\n\n")
	b.WriteString("  " + m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m editModel) markLabel(ok bool, v time.Duration) string {
	if !ok {
		return "-"
	}
	return timeline.FormatTimecode(v)
}

// virtualBar düzenlenmiş videoyu gösterir; işaretli aralık kırmızıdır.
func (m editModel) virtualBar(width int) string {
	scale := timeline.Scale{Width: width, Total: m.manager.Current().TotalDuration()}
	head := scale.ToColumn(m.playhead)
	inCol, outCol := -1, -1
	if m.hasIn {
		inCol = scale.ToColumn(m.markIn)
	}
	if m.hasOut {
		outCol = scale.ToColumn(m.markOut)
	}
	lo, hi := min(inCol, outCol), max(inCol, outCol)

	var b strings.Builder
	b.WriteString(dimStyle.Render("["))
	for i := 0; i < width; i++ {
		switch {
		case i == head:
			b.WriteString(markerStyle.Render("┃"))
		case i == inCol || i == outCol:
			b.WriteString(markerStyle.Render("◆"))
		case m.hasIn && m.hasOut && i > lo && i < hi:
			b.WriteString(removedStyle.Render("━"))
		default:
			b.WriteString(keptStyle.Render("━"))
		}
	}
	b.WriteString(dimStyle.Render("]"))
	return b.String()
}

// sourceBar orijinal dosyada korunan ve silinen bölgeleri gösterir.
func (m editModel) sourceBar(width int) string {
	list := m.manager.Current()
	scale := timeline.Scale{Width: width, Total: m.source}
	gaps := list.DeletedRegions(m.source)
	head := scale.ToColumn(list.VirtualToSource(m.playhead))

	var b strings.Builder
	b.WriteString(dimStyle.Render("["))
	for i := 0; i < width; i++ {
		t := scale.ToVirtual(i)
		deleted := false
		for _, g := range gaps {
			if t >= g.SourceStart && t < g.SourceEnd {
				deleted = true
				break
			}
		}
		switch {
		case i == head:
			b.WriteString(markerStyle.Render("┃"))
		case deleted:
			b.WriteString(removedStyle.Render("░"))
		default:
			b.WriteString(keptStyle.Render("█"))
		}
	}
	b.WriteString(dimStyle.Render("]"))
	return b.String()
}
