package viewer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lucasreis/polyview/internal/models"
)

// Volume tier classes for card styling.
const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

// Span is a run of title text; Match marks runs that hit the active search
// term so the surface can render them highlighted.
type Span struct {
	Text  string
	Match bool
}

// OutcomeView pairs an outcome name with its display price ("$0.52", or
// "N/A" when the price is missing).
type OutcomeView struct {
	Name  string
	Price string
}

// Card is the render-ready projection of one listing record.
type Card struct {
	ID          string
	Title       []Span
	Description string
	Category    string
	Status      string
	Closed      bool
	VolumeTier  string
	Volume      string
	Outcomes    []OutcomeView
}

// Detail is the expanded single-market view.
type Detail struct {
	ID          string
	Title       string
	Description string
	Category    string
	Status      string
	Closed      bool
	CreatedTime string
	CloseTime   string
	Volume      string
	Slug        string
	Outcomes    []OutcomeView
}

// Page is one renderable page of the filtered collection.
type Page struct {
	Cards      []Card
	Number     int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	NoResults  bool
}

// NewCard builds the card view model. search is the active search term used
// for title highlighting; pass "" for none.
func NewCard(m models.Market, search string) Card {
	return Card{
		ID:          m.ID,
		Title:       HighlightMatches(m.Title, search),
		Description: truncateDescription(m.Description),
		Category:    m.Category,
		Status:      statusText(m.Closed),
		Closed:      m.Closed,
		VolumeTier:  VolumeTier(m.Volume),
		Volume:      FormatAmount(m.Volume),
		Outcomes:    outcomeViews(m.Outcomes),
	}
}

// NewDetail builds the expanded view model.
func NewDetail(m models.Market) Detail {
	category := m.Category
	if category == "" {
		category = "Uncategorized"
	}
	return Detail{
		ID:          m.ID,
		Title:       m.Title,
		Description: orDefault(m.Description, "No description available"),
		Category:    category,
		Status:      statusText(m.Closed),
		Closed:      m.Closed,
		CreatedTime: m.CreatedTime,
		CloseTime:   m.CloseTime,
		Volume:      FormatAmount(m.Volume),
		Slug:        orDefault(m.Slug, "N/A"),
		Outcomes:    outcomeViews(m.Outcomes),
	}
}

// HighlightMatches splits text into spans, marking every case-insensitive
// occurrence of term. With an empty term the whole text is one unmarked
// span. Matching walks the original string rune by rune; case folding can
// change a rune's byte length, so offsets are never taken from a lowered
// copy.
func HighlightMatches(text, term string) []Span {
	if term == "" || text == "" {
		return []Span{{Text: text}}
	}

	var spans []Span
	start := 0 // start of the current unmarked run
	i := 0
	for i < len(text) {
		n, ok := foldPrefix(text[i:], term)
		if !ok {
			_, size := utf8.DecodeRuneInString(text[i:])
			i += size
			continue
		}
		if i > start {
			spans = append(spans, Span{Text: text[start:i]})
		}
		spans = append(spans, Span{Text: text[i : i+n], Match: true})
		i += n
		start = i
	}
	if start < len(text) || len(spans) == 0 {
		spans = append(spans, Span{Text: text[start:]})
	}
	return spans
}

// foldPrefix reports whether text starts with a case-insensitive match of
// term, and the byte length of that prefix in text. Simple case folding
// maps rune to rune, so the candidate window is the prefix of text with as
// many runes as term.
func foldPrefix(text, term string) (int, bool) {
	i := 0
	for range term {
		if i >= len(text) {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	if strings.EqualFold(text[:i], term) {
		return i, true
	}
	return 0, false
}

// FormatAmount renders a volume figure: millions as "X.YM", thousands as
// "X.YK", anything below as a rounded integer.
func FormatAmount(v float64) string {
	switch {
	case v >= 1000000:
		return fmt.Sprintf("%.1fM", v/1000000)
	case v >= 1000:
		return fmt.Sprintf("%.1fK", v/1000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// VolumeTier buckets a volume into the card styling class.
func VolumeTier(v float64) string {
	switch {
	case v > 1000000:
		return TierHigh
	case v > 100000:
		return TierMedium
	default:
		return TierLow
	}
}

func outcomeViews(outcomes []models.Outcome) []OutcomeView {
	if len(outcomes) == 0 {
		return nil
	}
	views := make([]OutcomeView, 0, len(outcomes))
	for _, o := range outcomes {
		price := "N/A"
		if o.Price != nil {
			price = fmt.Sprintf("$%.2f", *o.Price)
		}
		views = append(views, OutcomeView{Name: o.Name, Price: price})
	}
	return views
}

// truncateDescription caps the card blurb at 100 runes, never splitting a
// multi-byte rune.
func truncateDescription(desc string) string {
	if desc == "" {
		return "No description available"
	}
	count := 0
	for i := range desc {
		if count == 100 {
			return desc[:i] + "..."
		}
		count++
	}
	return desc
}

func statusText(closed bool) string {
	if closed {
		return "Closed"
	}
	return "Active"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
