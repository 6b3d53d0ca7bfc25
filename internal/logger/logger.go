package logger

// Messages are formatted to look and feel like clang's diagnostics. Each
// message carries the contents of the line it points at so the caller can
// show exactly which token was being read when scanning or parsing stopped.

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"fortio.org/safecast"
	"github.com/mattn/go-runewidth"
)

type Log struct {
	AddMsg    func(Msg)
	HasErrors func() bool
	Done      func() []Msg
}

type LogLevel int8

const (
	LevelNone LogLevel = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelSilent
)

type MsgKind uint8

const (
	Error MsgKind = iota
	Warning
)

func (kind MsgKind) String() string {
	if kind == Warning {
		return "warning"
	}
	return "error"
}

type Msg struct {
	Kind     MsgKind
	Text     string
	Location *MsgLocation
}

type MsgLocation struct {
	File   string
	Line   int // 1-based
	Column int // 0-based, in bytes
	Length int // in bytes

	// The line of the fragment containing the message and the column of the
	// message inside that text. This differs from "Column" when the fragment
	// was embedded at a non-zero column of a container document.
	LineText       string
	LineTextColumn int
}

type Loc struct {
	// This is the 0-based index of this location from the start of the
	// fragment, in bytes
	Start int32
}

type Range struct {
	Loc Loc
	Len int32
}

func (r Range) End() int32 {
	return r.Loc.Start + r.Len
}

// A position as reported to the user. Unlike "Loc", the offset is relative to
// the container document when the fragment was given a starting position.
type Position struct {
	Offset int32 // 0-based, in bytes
	Line   int32 // 1-based
	Column int32 // 0-based, in bytes from the start of the line
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// A half-open span of source text
type Location struct {
	Start Position
	End   Position
}

func (l Location) String() string {
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}

type Source struct {
	Index uint32

	// This is used for error messages. It is never used to access the file
	// system.
	PrettyPath string

	Contents string
}

// Positions are stored as 32-bit values, so fragments must fit in that range
func NewSource(prettyPath string, contents string) (Source, error) {
	if _, err := safecast.Conv[int32](len(contents)); err != nil {
		return Source{}, fmt.Errorf("%s: source is too large: %w", prettyPath, err)
	}
	return Source{PrettyPath: prettyPath, Contents: contents}, nil
}

func (s *Source) TextForRange(r Range) string {
	return s.Contents[r.Loc.Start:r.End()]
}

// This type is just so we can use Go's native sort function
type msgsArray []Msg

func (a msgsArray) Len() int          { return len(a) }
func (a msgsArray) Swap(i int, j int) { a[i], a[j] = a[j], a[i] }

func (a msgsArray) Less(i int, j int) bool {
	ai := a[i]
	aj := a[j]
	li := ai.Location
	lj := aj.Location

	if li == nil || lj == nil {
		return li == nil && lj != nil
	}
	if li.File != lj.File {
		return li.File < lj.File
	}
	if li.Line != lj.Line {
		return li.Line < lj.Line
	}
	if li.Column != lj.Column {
		return li.Column < lj.Column
	}
	if ai.Kind != aj.Kind {
		return ai.Kind < aj.Kind
	}
	return ai.Text < aj.Text
}

func plural(prefix string, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, prefix)
	}
	return fmt.Sprintf("%d %ss", count, prefix)
}

func errorAndWarningSummary(errors int, warnings int) string {
	switch {
	case errors == 0:
		return plural("warning", warnings)
	case warnings == 0:
		return plural("error", errors)
	default:
		return fmt.Sprintf("%s and %s",
			plural("warning", warnings),
			plural("error", errors))
	}
}

type TerminalInfo struct {
	IsTTY           bool
	UseColorEscapes bool
	Width           int
	Height          int
}

type StderrColor uint8

const (
	ColorIfTerminal StderrColor = iota
	ColorNever
	ColorAlways
)

type StderrOptions struct {
	IncludeSource bool
	ErrorLimit    int
	Color         StderrColor
	LogLevel      LogLevel
}

func NewStderrLog(options StderrOptions) Log {
	var mutex sync.Mutex
	var msgs msgsArray
	terminalInfo := GetTerminalInfo(os.Stderr)
	errors := 0
	warnings := 0
	errorLimitWasHit := false

	switch options.Color {
	case ColorNever:
		terminalInfo.UseColorEscapes = false
	case ColorAlways:
		terminalInfo.UseColorEscapes = SupportsColorEscapes
	}

	return Log{
		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			msgs = append(msgs, msg)

			// Be silent if we're past the limit so we don't flood the terminal
			if errorLimitWasHit {
				return
			}

			switch msg.Kind {
			case Error:
				errors++
				if options.LogLevel <= LevelError {
					writeStringWithColor(os.Stderr, msg.String(options, terminalInfo))
				}
			case Warning:
				warnings++
				if options.LogLevel <= LevelWarning {
					writeStringWithColor(os.Stderr, msg.String(options, terminalInfo))
				}
			}

			if options.ErrorLimit != 0 && errors >= options.ErrorLimit {
				errorLimitWasHit = true
				if options.LogLevel <= LevelError {
					writeStringWithColor(os.Stderr, fmt.Sprintf(
						"%s reached (disable error limit with --error-limit=0)\n", errorAndWarningSummary(errors, warnings)))
				}
			}
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return errors > 0
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()

			if !errorLimitWasHit && options.LogLevel <= LevelInfo && (warnings != 0 || errors != 0) {
				writeStringWithColor(os.Stderr, fmt.Sprintf("%s\n", errorAndWarningSummary(errors, warnings)))
			}

			sort.Stable(msgs)
			return msgs
		},
	}
}

func NewDeferLog() Log {
	var msgs msgsArray
	var mutex sync.Mutex
	var hasErrors bool

	return Log{
		AddMsg: func(msg Msg) {
			mutex.Lock()
			defer mutex.Unlock()
			if msg.Kind == Error {
				hasErrors = true
			}
			msgs = append(msgs, msg)
		},
		HasErrors: func() bool {
			mutex.Lock()
			defer mutex.Unlock()
			return hasErrors
		},
		Done: func() []Msg {
			mutex.Lock()
			defer mutex.Unlock()
			sort.Stable(msgs)
			return msgs
		},
	}
}

const colorReset = "\033[0m"
const colorRed = "\033[31m"
const colorGreen = "\033[32m"
const colorMagenta = "\033[35m"
const colorBold = "\033[1m"
const colorResetBold = "\033[0;1m"

func (msg Msg) String(options StderrOptions, terminalInfo TerminalInfo) string {
	kind := msg.Kind.String()
	kindColor := colorRed
	if msg.Kind == Warning {
		kindColor = colorMagenta
	}

	if msg.Location == nil {
		if terminalInfo.UseColorEscapes {
			return fmt.Sprintf("%s%s%s: %s%s%s\n",
				colorBold, kindColor, kind,
				colorResetBold, msg.Text,
				colorReset)
		}
		return fmt.Sprintf("%s: %s\n", kind, msg.Text)
	}

	if !options.IncludeSource {
		if terminalInfo.UseColorEscapes {
			return fmt.Sprintf("%s%s:%d:%d: %s%s: %s%s%s\n",
				colorBold, msg.Location.File, msg.Location.Line, msg.Location.Column,
				kindColor, kind,
				colorResetBold, msg.Text,
				colorReset)
		}
		return fmt.Sprintf("%s:%d:%d: %s: %s\n",
			msg.Location.File, msg.Location.Line, msg.Location.Column, kind, msg.Text)
	}

	d := detailStruct(msg, terminalInfo)

	if terminalInfo.UseColorEscapes {
		return fmt.Sprintf("%s%s:%d:%d: %s%s: %s%s\n%s%s%s%s%s%s\n%s%s%s%s\n",
			colorBold, d.Path, d.Line, d.Column,
			kindColor, d.Kind,
			colorResetBold, d.Message,
			colorReset, d.SourceBefore, colorGreen, d.SourceMarked, colorReset, d.SourceAfter,
			colorGreen, d.Indent, d.Marker,
			colorReset)
	}

	return fmt.Sprintf("%s:%d:%d: %s: %s\n%s\n%s%s\n",
		d.Path, d.Line, d.Column, d.Kind, d.Message, d.Source, d.Indent, d.Marker)
}

type MsgDetail struct {
	Path    string
	Line    int
	Column  int
	Kind    string
	Message string

	// Source == SourceBefore + SourceMarked + SourceAfter
	Source       string
	SourceBefore string
	SourceMarked string
	SourceAfter  string

	Indent string
	Marker string
}

// Returns the bounds of the line containing "offset". Line breaks are "\n",
// "\r", "\r\n" and "\f", which matches how the CSS lexer counts lines.
func lineBounds(contents string, offset int) (lineStart int, lineEnd int) {
	if offset > len(contents) {
		offset = len(contents)
	}
	for i := offset - 1; i >= 0; i-- {
		if c := contents[i]; c == '\n' || c == '\r' || c == '\f' {
			lineStart = i + 1
			break
		}
	}
	lineEnd = len(contents)
	for i := offset; i < len(contents); i++ {
		if c := contents[i]; c == '\n' || c == '\r' || c == '\f' {
			lineEnd = i
			break
		}
	}
	return
}

// The line and column come from "pos", which may be relative to a container
// document, while the line text is recovered from the raw range "r" inside
// the fragment itself.
func LocationOrNil(source *Source, r Range, pos Position) *MsgLocation {
	if source == nil {
		return nil
	}
	lineStart, lineEnd := lineBounds(source.Contents, int(r.Loc.Start))
	return &MsgLocation{
		File:           source.PrettyPath,
		Line:           int(pos.Line),
		Column:         int(pos.Column),
		Length:         int(r.Len),
		LineText:       source.Contents[lineStart:lineEnd],
		LineTextColumn: int(r.Loc.Start) - lineStart,
	}
}

func detailStruct(msg Msg, terminalInfo TerminalInfo) MsgDetail {
	loc := *msg.Location
	lineText := loc.LineText
	column := loc.LineTextColumn
	length := loc.Length

	// Clamp values in range
	if column < 0 {
		column = 0
	}
	if column > len(lineText) {
		column = len(lineText)
	}
	if length < 0 {
		length = 0
	}
	if length > len(lineText)-column {
		length = len(lineText) - column
	}

	spacesPerTab := 2
	rendered := renderTabStops(lineText, spacesPerTab)
	markerStart := len(renderTabStops(lineText[:column], spacesPerTab))
	markerEnd := markerStart
	if length > 0 {
		markerEnd = len(renderTabStops(lineText[:column+length], spacesPerTab))
	}

	// Trim the line to fit the terminal width
	width := terminalInfo.Width
	if width < 1 {
		width = 80
	}
	if column == len(lineText) {
		// Reserve a column for a marker that points one past the end of the line
		width -= 1
	}
	if len(rendered) > width {
		// Try to center the marker
		sliceStart := (markerStart + markerEnd - width) / 2
		if sliceStart > markerStart-width/5 {
			sliceStart = markerStart - width/5
		}
		if sliceStart < 0 {
			sliceStart = 0
		}
		if sliceStart > len(rendered)-width {
			sliceStart = len(rendered) - width
		}
		sliceEnd := sliceStart + width

		sliced := rendered[sliceStart:sliceEnd]
		markerStart -= sliceStart
		markerEnd -= sliceStart
		if markerStart < 0 {
			markerStart = 0
		}
		if markerEnd > len(sliced) {
			markerEnd = len(sliced)
		}

		// Truncate the ends with "..."
		if len(sliced) > 3 && sliceStart > 0 {
			sliced = "..." + sliced[3:]
			if markerStart < 3 {
				markerStart = 3
			}
		}
		if len(sliced) > 3 && sliceEnd < len(rendered) {
			sliced = sliced[:len(sliced)-3] + "..."
			if markerEnd > len(sliced)-3 {
				markerEnd = len(sliced) - 3
			}
		}
		rendered = sliced
	}
	if markerStart > len(rendered) {
		markerStart = len(rendered)
	}
	if markerEnd > len(rendered) {
		markerEnd = len(rendered)
	}
	if markerEnd < markerStart {
		markerEnd = markerStart
	}

	// Wide characters take up two terminal columns
	markerWidth := runewidth.StringWidth(rendered[markerStart:markerEnd])
	marker := "^"
	if markerWidth > 1 {
		marker = strings.Repeat("~", markerWidth)
	}

	return MsgDetail{
		Path:    loc.File,
		Line:    loc.Line,
		Column:  loc.Column,
		Kind:    msg.Kind.String(),
		Message: msg.Text,

		Source:       rendered,
		SourceBefore: rendered[:markerStart],
		SourceMarked: rendered[markerStart:markerEnd],
		SourceAfter:  rendered[markerEnd:],

		Indent: strings.Repeat(" ", runewidth.StringWidth(rendered[:markerStart])),
		Marker: marker,
	}
}

func renderTabStops(withTabs string, spacesPerTab int) string {
	if !strings.ContainsRune(withTabs, '\t') {
		return withTabs
	}

	withoutTabs := strings.Builder{}
	count := 0

	for _, c := range withTabs {
		if c == '\t' {
			spaces := spacesPerTab - count%spacesPerTab
			for i := 0; i < spaces; i++ {
				withoutTabs.WriteRune(' ')
				count++
			}
		} else {
			withoutTabs.WriteRune(c)
			count++
		}
	}

	return withoutTabs.String()
}

func (log Log) AddError(source *Source, r Range, pos Position, text string) {
	log.AddMsg(Msg{
		Kind:     Error,
		Text:     text,
		Location: LocationOrNil(source, r, pos),
	})
}

func (log Log) AddWarning(source *Source, r Range, pos Position, text string) {
	log.AddMsg(Msg{
		Kind:     Warning,
		Text:     text,
		Location: LocationOrNil(source, r, pos),
	})
}
