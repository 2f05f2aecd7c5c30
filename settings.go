package pdftables

import (
	"fmt"

	"github.com/pyhub-apps/pdftables-go/internal/edges"
	"github.com/pyhub-apps/pdftables-go/internal/geom"
	"github.com/pyhub-apps/pdftables-go/internal/tablefinder"
	"github.com/pyhub-apps/pdftables-go/internal/words"
)

// Strategy selects how edges are derived for one axis of the table grid,
// matching spec.md §6's vertical_strategy/horizontal_strategy settings.
type Strategy int

const (
	// Lines derives edges from stroked lines and every rectangle's border.
	Lines Strategy = iota
	// LinesStrict derives edges from stroked lines and thin rectangles
	// only; this is the spec's documented default.
	LinesStrict
	// Text derives edges from clustered word gutters.
	Text
)

func (s Strategy) toEdges() edges.Strategy {
	switch s {
	case Lines:
		return edges.Lines
	case Text:
		return edges.Text
	default:
		return edges.LinesStrict
	}
}

// PunctuationSplit selects how word extraction splits at punctuation
// characters (spec.md §6's text_split_at_punctuation: None | "all" |
// custom string).
type PunctuationSplit struct {
	mode   words.SplitPunctuationMode
	custom string
}

// SplitAtNoPunctuation never splits a word at punctuation. This is the default.
func SplitAtNoPunctuation() PunctuationSplit {
	return PunctuationSplit{mode: words.SplitNone}
}

// SplitAtAllPunctuation splits at any ASCII punctuation character.
func SplitAtAllPunctuation() PunctuationSplit {
	return PunctuationSplit{mode: words.SplitAll}
}

// SplitAtCustomPunctuation splits at the characters in chars.
func SplitAtCustomPunctuation(chars string) PunctuationSplit {
	return PunctuationSplit{mode: words.SplitCustom, custom: chars}
}

// Settings configures every stage of the table-finding and word-extraction
// pipeline. Field names and defaults mirror spec.md §6's settings table.
type Settings struct {
	VerticalStrategy, HorizontalStrategy Strategy

	SnapXTolerance, SnapYTolerance                 float64
	JoinXTolerance, JoinYTolerance                 float64
	EdgeMinLength                                  float64
	EdgeMinLengthPrefilter                         float64
	IntersectionXTolerance, IntersectionYTolerance float64
	MinWordsVertical, MinWordsHorizontal           int

	TextXTolerance, TextYTolerance float64
	TextKeepBlankChars             bool
	TextUseTextFlow                bool
	TextReadInClockwise            bool
	TextSplitAtPunctuation         PunctuationSplit
	TextExpandLigatures            bool

	IncludeSingleCell bool
}

// DefaultSettings returns the spec.md §6 documented defaults.
func DefaultSettings() Settings {
	return Settings{
		VerticalStrategy:       LinesStrict,
		HorizontalStrategy:     LinesStrict,
		SnapXTolerance:         3.0,
		SnapYTolerance:         3.0,
		JoinXTolerance:         3.0,
		JoinYTolerance:         3.0,
		EdgeMinLength:          3.0,
		EdgeMinLengthPrefilter: 1.0,
		IntersectionXTolerance: 3.0,
		IntersectionYTolerance: 3.0,
		MinWordsVertical:       3,
		MinWordsHorizontal:     1,
		TextXTolerance:         3.0,
		TextYTolerance:         3.0,
		TextKeepBlankChars:     false,
		TextUseTextFlow:        false,
		TextReadInClockwise:    true,
		TextSplitAtPunctuation: SplitAtNoPunctuation(),
		TextExpandLigatures:    true,
		IncludeSingleCell:      false,
	}
}

// Option mutates a Settings value, matching the teacher's With...(value)
// functional-options pattern (pkg/pdf's TableExtractionOption/
// TextExtractionOption).
type Option func(*Settings)

func WithVerticalStrategy(s Strategy) Option {
	return func(cfg *Settings) { cfg.VerticalStrategy = s }
}

func WithHorizontalStrategy(s Strategy) Option {
	return func(cfg *Settings) { cfg.HorizontalStrategy = s }
}

func WithSnapTolerance(x, y float64) Option {
	return func(cfg *Settings) { cfg.SnapXTolerance, cfg.SnapYTolerance = x, y }
}

func WithJoinTolerance(x, y float64) Option {
	return func(cfg *Settings) { cfg.JoinXTolerance, cfg.JoinYTolerance = x, y }
}

func WithEdgeMinLength(length, prefilterLength float64) Option {
	return func(cfg *Settings) {
		cfg.EdgeMinLength = length
		cfg.EdgeMinLengthPrefilter = prefilterLength
	}
}

func WithIntersectionTolerance(x, y float64) Option {
	return func(cfg *Settings) { cfg.IntersectionXTolerance, cfg.IntersectionYTolerance = x, y }
}

func WithMinWords(horizontal, vertical int) Option {
	return func(cfg *Settings) {
		cfg.MinWordsHorizontal = horizontal
		cfg.MinWordsVertical = vertical
	}
}

func WithTextTolerance(x, y float64) Option {
	return func(cfg *Settings) { cfg.TextXTolerance, cfg.TextYTolerance = x, y }
}

func WithTextKeepBlankChars(keep bool) Option {
	return func(cfg *Settings) { cfg.TextKeepBlankChars = keep }
}

func WithTextUseTextFlow(use bool) Option {
	return func(cfg *Settings) { cfg.TextUseTextFlow = use }
}

func WithTextReadInClockwise(clockwise bool) Option {
	return func(cfg *Settings) { cfg.TextReadInClockwise = clockwise }
}

func WithTextSplitAtPunctuation(split PunctuationSplit) Option {
	return func(cfg *Settings) { cfg.TextSplitAtPunctuation = split }
}

func WithTextExpandLigatures(expand bool) Option {
	return func(cfg *Settings) { cfg.TextExpandLigatures = expand }
}

func WithIncludeSingleCell(include bool) Option {
	return func(cfg *Settings) { cfg.IncludeSingleCell = include }
}

// NewSettings builds Settings from DefaultSettings plus opts, matching the
// teacher's variadic-option constructor style.
func NewSettings(opts ...Option) Settings {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// InvalidConfigError reports a tolerance or length field configured below
// zero (spec.md §7's InvalidConfig kind), raised when Settings are first
// consumed by a pipeline entry point.
type InvalidConfigError struct {
	Field string
	Value float64
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("pdftables: invalid config: %s = %v (must be non-negative)", e.Field, e.Value)
}

// toTolerance validates a single non-negative field, naming it in any
// resulting InvalidConfigError.
func toTolerance(field string, v float64) (geom.Tolerance, error) {
	t, err := geom.NewTolerance(v)
	if err != nil {
		return 0, &InvalidConfigError{Field: field, Value: v}
	}
	return t, nil
}

// toTablefinderSettings converts and validates Settings into the core
// pipeline's tablefinder.Settings, surfacing the first out-of-range field
// as an InvalidConfigError instead of panicking.
func (s Settings) toTablefinderSettings() (tablefinder.Settings, error) {
	type namedTolerance struct {
		name string
		val  float64
	}
	named := []namedTolerance{
		{"snap_x_tolerance", s.SnapXTolerance},
		{"snap_y_tolerance", s.SnapYTolerance},
		{"join_x_tolerance", s.JoinXTolerance},
		{"join_y_tolerance", s.JoinYTolerance},
		{"intersection_x_tolerance", s.IntersectionXTolerance},
		{"intersection_y_tolerance", s.IntersectionYTolerance},
		{"text_x_tolerance", s.TextXTolerance},
		{"text_y_tolerance", s.TextYTolerance},
	}
	tolerances := make([]geom.Tolerance, len(named))
	for i, n := range named {
		t, err := toTolerance(n.name, n.val)
		if err != nil {
			return tablefinder.Settings{}, err
		}
		tolerances[i] = t
	}
	snapX, snapY, joinX, joinY, interX, interY, textX, textY :=
		tolerances[0], tolerances[1], tolerances[2], tolerances[3],
		tolerances[4], tolerances[5], tolerances[6], tolerances[7]

	if s.EdgeMinLength < 0 {
		return tablefinder.Settings{}, &InvalidConfigError{Field: "edge_min_length", Value: s.EdgeMinLength}
	}
	if s.EdgeMinLengthPrefilter < 0 {
		return tablefinder.Settings{}, &InvalidConfigError{Field: "edge_min_length_prefilter", Value: s.EdgeMinLengthPrefilter}
	}

	wordSettings := words.Settings{
		XTolerance:       textX,
		YTolerance:       textY,
		KeepBlank:        s.TextKeepBlankChars,
		UseTextFlow:      s.TextUseTextFlow,
		Clockwise:        s.TextReadInClockwise,
		SplitPunctuation: s.TextSplitAtPunctuation.mode,
		SplitCustomChars: s.TextSplitAtPunctuation.custom,
		ExpandLigatures:  s.TextExpandLigatures,
	}

	return tablefinder.Settings{
		HorizontalStrategy:     s.HorizontalStrategy.toEdges(),
		VerticalStrategy:       s.VerticalStrategy.toEdges(),
		SnapX:                  snapX,
		SnapY:                  snapY,
		JoinX:                  joinX,
		JoinY:                  joinY,
		EdgeMinLength:          geom.Scalar(s.EdgeMinLength),
		EdgeMinLengthPrefilter: geom.Scalar(s.EdgeMinLengthPrefilter),
		IntersectionX:          interX,
		IntersectionY:          interY,
		MinWords:               edges.MinWords{Horizontal: s.MinWordsHorizontal, Vertical: s.MinWordsVertical},
		IncludeSingleCell:      s.IncludeSingleCell,
		Words:                  wordSettings,
	}, nil
}
