// Package parser implements the slide-file scanner. Slide files are
// flat text: runs of dashes delimit slides and open a metadata block,
// "***" splits a slide body into fragments, and "???" starts the
// speaker notes. The scanner is as forgiving as it can be, collecting
// every problem it finds in one pass, but any problem at all means no
// deck is returned.
package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/harvey-slides/harvey/internal/domain/entities"
	"github.com/harvey-slides/harvey/internal/domain/ports"
)

// SlideFileParser parses slide files into decks, attributing every
// metadata block to its exact origin through the metadata source.
type SlideFileParser struct {
	source ports.MetadataSource
}

// NewSlideFileParser creates a slide file parser backed by the given
// provenance-tagged metadata source.
func NewSlideFileParser(source ports.MetadataSource) *SlideFileParser {
	return &SlideFileParser{source: source}
}

// scanState is the tagged state of the line scanner. Each step of the
// scan consumes one line and produces the next state value; the state
// structs themselves are never mutated in place.
type scanState interface {
	isScanState()
}

// stateInitial is the start state; only a delimiter may follow.
type stateInitial struct{}

// stateMetadata is an open metadata block: the 0-based offset of the
// delimiter that opened it, the line value that will terminate it,
// and the raw text accumulated so far (one entry per line, each with
// its line terminator).
type stateMetadata struct {
	openOfs    int
	terminator string
	raw        []string
}

// stateFragments is an in-progress slide capturing body fragments.
type stateFragments struct {
	slide entities.Slide
}

// stateNotes is an in-progress slide capturing speaker notes.
type stateNotes struct {
	slide entities.Slide
}

// stateAborting discards lines after a bad metadata block until the
// next delimiter reopens a block, so one broken slide does not hide
// problems further down the file.
type stateAborting struct{}

func (stateInitial) isScanState()   {}
func (stateMetadata) isScanState()  {}
func (stateFragments) isScanState() {}
func (stateNotes) isScanState()     {}
func (stateAborting) isScanState()  {}

// ParseFile reads a slide file from disk and parses it. An I/O
// failure is returned immediately; anything found during the scan is
// collected into an entities.LoadErrors instead.
func (p *SlideFileParser) ParseFile(path string) (*entities.SlideDeck, error) {
	content, err := os.ReadFile(path) // #nosec G304 - slide paths come from the deck file
	if err != nil {
		return nil, fmt.Errorf("reading slide file: %w", err)
	}
	return p.Parse(path, content)
}

// Parse parses slide file content. The scan recovers from malformed
// metadata blocks and keeps going, so the error list holds as many
// real problems as one pass can find; if it is non-empty the whole
// deck is discarded, even slides that parsed cleanly.
func (p *SlideFileParser) Parse(name string, content []byte) (*entities.SlideDeck, error) {
	s := &scan{
		source: p.source,
		deck:   &entities.SlideDeck{Path: name},
	}

	var st scanState = stateInitial{}
	for ofs, line := range splitLines(string(content)) {
		next, stop := s.step(st, ofs, line)
		if stop {
			break
		}
		st = next
	}
	s.finish(st)

	if len(s.errs) > 0 {
		return nil, s.errs
	}
	return s.deck, nil
}

// scan carries the outputs of one pass: the deck being assembled and
// the ordered error list, appended to in file order.
type scan struct {
	source ports.MetadataSource
	deck   *entities.SlideDeck
	errs   entities.LoadErrors
}

// step consumes one line and returns the next state. The returned
// stop flag is set only when the first line is not a delimiter, in
// which case no scan is possible at all.
func (s *scan) step(st scanState, ofs int, line string) (scanState, bool) {
	switch st := st.(type) {
	case stateInitial:
		if !isDelimiter(line) {
			return st, true
		}
		return openMetadata(ofs, line), false

	case stateMetadata:
		if line == st.terminator {
			return s.closeMetadata(st, ofs), false
		}
		st.raw = append(st.raw, line+"\n")
		return st, false

	case stateFragments:
		switch {
		case line == "***":
			st.slide.Fragments = append(st.slide.Fragments, "")
			return st, false
		case line == "???":
			return stateNotes{slide: st.slide}, false
		case isDelimiter(line):
			s.deck.Slides = append(s.deck.Slides, st.slide)
			return openMetadata(ofs, line), false
		default:
			st.slide.Fragments[len(st.slide.Fragments)-1] += line + "\n"
			return st, false
		}

	case stateNotes:
		if isDelimiter(line) {
			s.deck.Slides = append(s.deck.Slides, st.slide)
			return openMetadata(ofs, line), false
		}
		st.slide.Notes += line + "\n"
		return st, false

	case stateAborting:
		if isDelimiter(line) {
			return openMetadata(ofs, line), false
		}
		return st, false

	default:
		panic(fmt.Sprintf("unknown scan state %T", st))
	}
}

// closeMetadata parses an accumulated metadata block. The provenance
// records the terminator line's offset; the slide and any error are
// pinned to the opening delimiter's 1-based line.
func (s *scan) closeMetadata(st stateMetadata, ofs int) scanState {
	origin := entities.SlideOrigin{
		File:       s.deck.Path,
		Slide:      len(s.deck.Slides) + 1,
		LineOffset: ofs,
	}

	doc, err := s.source.NodeFromSource(origin, []byte(strings.Join(st.raw, "")))
	if err != nil {
		s.errs = append(s.errs, entities.BadMetadataError{Line: st.openOfs + 1, Cause: err})
		return stateAborting{}
	}

	return stateFragments{slide: entities.Slide{
		Metadata:  doc,
		StartLine: st.openOfs + 1,
		Fragments: []string{""},
	}}
}

// finish applies the end-of-input rules: an unterminated final slide
// is valid and implicitly closed, an unterminated metadata block is
// not.
func (s *scan) finish(st scanState) {
	switch st := st.(type) {
	case stateInitial:
		s.errs = append(s.errs, entities.MissingDelimiterError{})
	case stateMetadata:
		s.errs = append(s.errs, entities.IncompleteMetadataError{Line: st.openOfs + 1})
	case stateFragments:
		s.deck.Slides = append(s.deck.Slides, st.slide)
	case stateNotes:
		s.deck.Slides = append(s.deck.Slides, st.slide)
	case stateAborting:
		// the causing error was already recorded
	}
}

// openMetadata starts a metadata block for the given delimiter line.
// Short delimiters (up to three dashes) open a blank-line-terminated
// block; longer ones open a block terminated by a literal "...",
// which tolerates embedded blank lines.
func openMetadata(ofs int, line string) stateMetadata {
	terminator := ""
	if len(line) > 3 {
		terminator = "..."
	}
	return stateMetadata{openOfs: ofs, terminator: terminator}
}

// isDelimiter reports whether a line consists only of dashes. An
// empty line is not a delimiter.
func isDelimiter(line string) bool {
	if line == "" {
		return false
	}
	for _, c := range line {
		if c != '-' {
			return false
		}
	}
	return true
}

// splitLines splits text into lines the way the scanner counts them:
// a trailing newline does not produce a final empty line, and a
// carriage return before the newline is dropped.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
