// Package words implements word extraction from ordered characters:
// rotation-aware line clustering, direction-aware sorting, the word
// boundary rule, ligature expansion, and punctuation splitting.
//
// Grounded on original_source/src/words.rs (WordExtractor, iter_sort_chars,
// char_begins_new_word, iter_chars_to_words, merge_chars), generalized from
// its two-flag (horizontal_ltr/vertical_ttb) direction model to the four
// rotation-bucket table in spec.md §4.7, which is driven by a single
// Clockwise flag.
package words

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/pyhub-apps/pdftables-go/internal/cluster"
	"github.com/pyhub-apps/pdftables-go/internal/geom"
	"github.com/pyhub-apps/pdftables-go/internal/pageobjects"
)

// SplitPunctuationMode selects how text_split_at_punctuation behaves.
type SplitPunctuationMode int

const (
	// SplitNone never splits a word at punctuation.
	SplitNone SplitPunctuationMode = iota
	// SplitAll splits at any ASCII punctuation character.
	SplitAll
	// SplitCustom splits at the characters in Settings.SplitCustomChars.
	SplitCustom
)

// defaultLigatures is the spec.md §4.7 ligature expansion table.
var defaultLigatures = map[string]string{
	"ﬀ": "ff",
	"ﬃ": "ffi",
	"ﬄ": "ffl",
	"ﬁ": "fi",
	"ﬂ": "fl",
	"ﬆ": "st",
	"ﬅ": "st",
}

// allPunctuation is spec.md §4.7's punctuation-all set.
const allPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Settings configures word extraction (spec.md §4.7).
type Settings struct {
	XTolerance       geom.Tolerance
	YTolerance       geom.Tolerance
	KeepBlank        bool
	UseTextFlow      bool
	Clockwise        bool
	SplitPunctuation SplitPunctuationMode
	SplitCustomChars string
	ExpandLigatures  bool
}

// DefaultSettings matches spec.md §6's documented defaults.
func DefaultSettings() Settings {
	return Settings{
		XTolerance:       geom.MustTolerance(3.0),
		YTolerance:       geom.MustTolerance(3.0),
		KeepBlank:        false,
		UseTextFlow:      false,
		Clockwise:        true,
		SplitPunctuation: SplitNone,
		ExpandLigatures:  true,
	}
}

// Word is a maximal run of characters, in reading order, that passed the
// rotation-aware intra-line proximity test.
type Word struct {
	Text            string
	BBox            geom.BBox
	RotationDegrees geom.Scalar
}

type extractor struct {
	settings    Settings
	splitChars  map[rune]struct{}
	ligatures   map[string]string
}

func newExtractor(s Settings) *extractor {
	e := &extractor{settings: s}

	switch s.SplitPunctuation {
	case SplitAll:
		e.splitChars = runeSet(allPunctuation)
	case SplitCustom:
		e.splitChars = runeSet(s.SplitCustomChars)
	default:
		e.splitChars = map[rune]struct{}{}
	}

	if s.ExpandLigatures {
		e.ligatures = defaultLigatures
	} else {
		e.ligatures = map[string]string{}
	}
	return e
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

// Extract runs word extraction over chars with the given settings.
func Extract(chars []pageobjects.Char, settings Settings) []Word {
	e := newExtractor(settings)
	ordered := e.orderChars(chars)

	words := make([]Word, 0, len(ordered))
	for _, group := range chunkByRotation(ordered) {
		for _, wordChars := range e.splitIntoWords(group) {
			words = append(words, e.mergeChars(wordChars))
		}
	}
	return words
}

// axis identifies which coordinate (X or Y) is the primary reading axis for
// a rotation bucket.
type axis int

const (
	axisX axis = iota
	axisY
)

// bucket returns the primary axis for rotation r and whether ascending order
// along that axis corresponds to clockwise=true, per spec.md §4.7's table.
func bucket(r geom.Scalar) (a axis, ascendingWhenClockwise bool) {
	switch {
	case r < 45 || r >= 315:
		return axisX, true
	case r < 135:
		return axisY, true
	case r < 225:
		return axisX, false
	default:
		return axisY, false
	}
}

// orderChars implements iter_sort_chars: cluster by rotation, then by
// cross-axis coordinate to form lines, then sort each line along its
// primary axis per the direction table.
func (e *extractor) orderChars(chars []pageobjects.Char) []pageobjects.Char {
	if e.settings.UseTextFlow {
		out := make([]pageobjects.Char, len(chars))
		copy(out, chars)
		return out
	}
	if len(chars) == 0 {
		return nil
	}

	rotationClusters := cluster.ClusterBy(chars, func(c pageobjects.Char) geom.Scalar {
		return c.RotationDegrees
	}, geom.MustTolerance(0.001))

	result := make([]pageobjects.Char, 0, len(chars))
	for _, rc := range rotationClusters {
		if len(rc) == 0 {
			continue
		}
		upright := rc[0].Upright
		var crossKey func(pageobjects.Char) geom.Scalar
		if upright {
			crossKey = func(c pageobjects.Char) geom.Scalar { return c.BBox.Y1 }
		} else {
			crossKey = func(c pageobjects.Char) geom.Scalar { return c.BBox.X1 }
		}

		lineClusters := cluster.ClusterBy(rc, crossKey, e.settings.YTolerance)

		a, ascWhenCW := bucket(rc[0].RotationDegrees)
		ascending := ascWhenCW == e.settings.Clockwise

		for _, line := range lineClusters {
			sorted := make([]pageobjects.Char, len(line))
			copy(sorted, line)
			sort.SliceStable(sorted, func(i, j int) bool {
				var xi, xj geom.Scalar
				if a == axisX {
					xi, xj = sorted[i].BBox.X1, sorted[j].BBox.X1
				} else {
					xi, xj = sorted[i].BBox.Y1, sorted[j].BBox.Y1
				}
				if ascending {
					return xi < xj
				}
				return xi > xj
			})
			result = append(result, sorted...)
		}
	}
	return result
}

// chunkByRotation groups consecutive characters sharing the exact same
// rotation value, mirroring Rust's Itertools::chunk_by on rotation_degrees.
func chunkByRotation(chars []pageobjects.Char) [][]pageobjects.Char {
	if len(chars) == 0 {
		return nil
	}
	var groups [][]pageobjects.Char
	start := 0
	for i := 1; i <= len(chars); i++ {
		if i == len(chars) || chars[i].RotationDegrees != chars[start].RotationDegrees {
			groups = append(groups, chars[start:i])
			start = i
		}
	}
	return groups
}

// charBeginsNewWord implements the spec.md §4.7 word-boundary proximity
// test, generalized to all four rotation buckets.
func (e *extractor) charBeginsNewWord(prev, curr pageobjects.Char) bool {
	a, ascWhenCW := bucket(curr.RotationDegrees)
	ascending := ascWhenCW == e.settings.Clockwise

	var ax, bx, cx, ay, cy geom.Scalar
	var primaryTol, crossTol geom.Scalar

	if a == axisX {
		primaryTol = e.settings.XTolerance.Scalar()
		crossTol = e.settings.YTolerance.Scalar()
		ay, cy = prev.BBox.Y1, curr.BBox.Y1
		if ascending {
			ax, bx, cx = prev.BBox.X1, prev.BBox.X2, curr.BBox.X1
		} else {
			ax, bx, cx = -prev.BBox.X2, -prev.BBox.X1, -curr.BBox.X2
		}
	} else {
		primaryTol = e.settings.YTolerance.Scalar()
		crossTol = e.settings.XTolerance.Scalar()
		ay, cy = prev.BBox.X1, curr.BBox.X1
		if ascending {
			ax, bx, cx = prev.BBox.Y1, prev.BBox.Y2, curr.BBox.Y1
		} else {
			ax, bx, cx = -prev.BBox.Y2, -prev.BBox.Y1, -curr.BBox.Y2
		}
	}

	return cx < ax || cx > bx+primaryTol || cy > ay+crossTol
}

// splitIntoWords implements iter_chars_to_words: blank handling, punctuation
// splitting, and the proximity boundary test.
func (e *extractor) splitIntoWords(chars []pageobjects.Char) [][]pageobjects.Char {
	var words [][]pageobjects.Char
	var current []pageobjects.Char

	flush := func() {
		if len(current) > 0 {
			words = append(words, current)
			current = nil
		}
	}

	for _, c := range chars {
		switch {
		case !e.settings.KeepBlank && isBlank(c.Text):
			flush()
		case isSingleSplitChar(c.Text, e.splitChars):
			flush()
			words = append(words, []pageobjects.Char{c})
		case len(current) > 0 && e.charBeginsNewWord(current[len(current)-1], c):
			flush()
			current = append(current, c)
		default:
			current = append(current, c)
		}
	}
	flush()
	return words
}

func isBlank(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func isSingleSplitChar(s string, splitChars map[rune]struct{}) bool {
	runes := []rune(s)
	if len(runes) != 1 {
		return false
	}
	_, ok := splitChars[runes[0]]
	return ok
}

// mergeChars implements merge_chars: concatenates a word's characters
// (reversed for exactly 270 degrees), applying ligature expansion and NFC
// normalization, and unions their bboxes.
func (e *extractor) mergeChars(chars []pageobjects.Char) Word {
	boxes := make([]geom.BBox, len(chars))
	for i, c := range chars {
		boxes[i] = c.BBox
	}
	bbox, _ := geom.UnionAll(boxes)

	ordered := chars
	if chars[0].RotationDegrees.Float64() == 270 {
		ordered = make([]pageobjects.Char, len(chars))
		for i, c := range chars {
			ordered[len(chars)-1-i] = c
		}
	}

	var sb strings.Builder
	for _, c := range ordered {
		text := c.Text
		if expanded, ok := e.ligatures[text]; ok {
			text = expanded
		}
		sb.WriteString(text)
	}

	return Word{
		Text:            norm.NFC.String(sb.String()),
		BBox:            bbox,
		RotationDegrees: chars[0].RotationDegrees,
	}
}
