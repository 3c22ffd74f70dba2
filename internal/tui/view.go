package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	colorize "github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/arcanaland/flashdeck/internal/deck"
)

const (
	clearScreen   = "\x1b[H\x1b[2J"
	defaultWidth  = 80
	minInfoWidth  = 20
	columnSpacing = 4
)

var (
	labelColor   = colorize.New(colorize.FgCyan)
	titleColor   = colorize.New(colorize.FgHiWhite, colorize.Bold)
	dimColor     = colorize.New(colorize.Faint)
	okColor      = colorize.New(colorize.FgGreen)
	errorColor   = colorize.New(colorize.FgRed, colorize.Bold)
	currentColor = colorize.New(colorize.FgHiWhite, colorize.Underline)
)

// Artist renders a card image as terminal art.
type Artist interface {
	Art(ctx context.Context, src string) (string, error)
}

// Options configures a View.
type Options struct {
	Out    io.Writer
	Artist Artist // optional
	Logger *zap.Logger

	// Raw is set while the terminal is in raw mode, where lines need "\r\n".
	Raw bool
	// Clear erases the screen before every draw.
	Clear bool
	// Width returns the terminal width; nil means 80 columns.
	Width func() int
}

// View is a terminal rendition of the viewer surface. It records the state
// pushed by the controller and prints it on Draw.
type View struct {
	opts Options
	art  map[string]string

	Status   string
	IsError  bool
	Enabled  bool
	Entries  []deck.CatalogEntry
	Selected string
	Panel    Panel
}

// NewView creates a View writing to opts.Out.
func NewView(opts Options) *View {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &View{opts: opts, art: make(map[string]string)}
}

// SetStatus updates the status line.
func (v *View) SetStatus(msg string, isError bool) {
	v.Status = msg
	v.IsError = isError
}

// SetControlsEnabled toggles the navigation keys.
func (v *View) SetControlsEnabled(enabled bool) {
	v.Enabled = enabled
}

// SetDeckOptions fills the deck list.
func (v *View) SetDeckOptions(entries []deck.CatalogEntry, selectedID string) {
	v.Entries = append(v.Entries[:0], entries...)
	v.Selected = selectedID
}

// ShowCards replaces the card panel with the content of fragment.
func (v *View) ShowCards(fragment string) {
	p, err := ParseFragment(fragment)
	if err != nil {
		v.opts.Logger.Warn("unreadable card fragment", zap.Error(err))
		p = Panel{Text: collapse(fragment)}
	}
	v.Panel = p
}

// Select marks the deck shown as current in the deck list.
func (v *View) Select(id string) {
	v.Selected = id
}

// Draw prints the whole surface.
func (v *View) Draw(ctx context.Context) error {
	var b strings.Builder
	if v.opts.Clear {
		b.WriteString(clearScreen)
	}

	width := defaultWidth
	if v.opts.Width != nil {
		if w := v.opts.Width(); w > 0 {
			width = w
		}
	}

	b.WriteString("\n")
	v.writeDecks(&b)
	b.WriteString("\n")
	v.writeCard(ctx, &b, width)
	b.WriteString("\n")
	v.writeStatus(&b)

	out := b.String()
	if v.opts.Raw {
		out = strings.ReplaceAll(out, "\n", "\r\n")
	}
	_, err := io.WriteString(v.opts.Out, out)
	return err
}

func (v *View) writeDecks(b *strings.Builder) {
	if len(v.Entries) == 0 {
		return
	}
	b.WriteString("  ")
	for i, e := range v.Entries {
		label := fmt.Sprintf("[%d] %s", i+1, e.Label())
		if e.ID == v.Selected {
			label = currentColor.Sprint(label)
		} else {
			label = dimColor.Sprint(label)
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(label)
	}
	b.WriteString("\n")
}

func (v *View) writeCard(ctx context.Context, b *strings.Builder, width int) {
	p := v.Panel

	var infoLines []string
	if p.Badge != "" {
		infoLines = append(infoLines, dimColor.Sprint(p.Badge), "")
	}
	if p.Title != "" {
		infoLines = append(infoLines, titleColor.Sprint(p.Title))
	}

	var artLines []string
	if art := v.loadArt(ctx, p.ImageSrc); art != "" {
		artLines = strings.Split(art, "\n")
	}
	maxArtWidth := 0
	for _, line := range artLines {
		if w := visibleWidth(line); w > maxArtWidth {
			maxArtWidth = w
		}
	}

	infoStartCol := 0
	if maxArtWidth > 0 {
		infoStartCol = maxArtWidth + columnSpacing
	}
	infoWidth := width - infoStartCol - 4
	if infoWidth < minInfoWidth {
		infoWidth = minInfoWidth
	}

	if p.Text != "" {
		infoLines = append(infoLines, "")
		infoLines = append(infoLines, wrapText(p.Text, infoWidth)...)
	}
	for _, s := range p.Sections {
		infoLines = append(infoLines, "", labelColor.Sprint(s.Label+":"))
		infoLines = append(infoLines, wrapText(s.Content, infoWidth)...)
	}
	if len(artLines) == 0 && p.ImageAlt != "" {
		infoLines = append(infoLines, "", dimColor.Sprintf("[image: %s]", p.ImageAlt))
	}

	// Art on the left, text on the right.
	maxLines := max(len(artLines), len(infoLines))
	for i := 0; i < maxLines; i++ {
		b.WriteString("  ")
		if i < len(artLines) {
			b.WriteString(artLines[i])
			b.WriteString(strings.Repeat(" ", infoStartCol-visibleWidth(artLines[i])))
		} else {
			b.WriteString(strings.Repeat(" ", infoStartCol))
		}
		if i < len(infoLines) {
			b.WriteString(infoLines[i])
		}
		b.WriteString("\n")
	}
}

func (v *View) writeStatus(b *strings.Builder) {
	b.WriteString("  ")
	if v.IsError {
		b.WriteString(errorColor.Sprint(v.Status))
	} else {
		b.WriteString(okColor.Sprint(v.Status))
	}
	b.WriteString("\n")

	keys := "n: suivant · r: aléatoire · 1-9/d: deck · q: quitter"
	if !v.Enabled {
		keys = "1-9/d: deck · q: quitter"
	}
	b.WriteString("  " + dimColor.Sprint(keys) + "\n")
}

func (v *View) loadArt(ctx context.Context, src string) string {
	if v.opts.Artist == nil || src == "" {
		return ""
	}
	if art, ok := v.art[src]; ok {
		return art
	}
	art, err := v.opts.Artist.Art(ctx, src)
	if err != nil {
		v.opts.Logger.Debug("card image unavailable", zap.String("src", src), zap.Error(err))
	}
	// Failures are remembered too so a missing image is fetched only once.
	v.art[src] = art
	return art
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len([]rune(currentLine))+1+len([]rune(word)) <= width:
			currentLine += " " + word
		default:
			result = append(result, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		result = append(result, currentLine)
	}
	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// visibleWidth counts the runes of s outside ANSI escape sequences
func visibleWidth(s string) int {
	n := 0
	inEscape := false
	for _, c := range s {
		switch {
		case inEscape:
			if c == 'm' {
				inEscape = false
			}
		case c == '\033':
			inEscape = true
		default:
			n++
		}
	}
	return n
}
