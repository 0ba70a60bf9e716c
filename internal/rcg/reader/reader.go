package reader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/louisbranch/rcg2csv/internal/rcg"
	"github.com/louisbranch/rcg2csv/internal/rcg/sexp"
)

const maxLineSize = 4 << 20

var (
	// ErrUnknownFormat is returned when the first line is not a ULG header.
	ErrUnknownFormat = errors.New("not an rcg game log")
	// ErrEmptyLog is returned for input without a header line.
	ErrEmptyLog = errors.New("empty game log")
)

// Stats summarises one parse.
type Stats struct {
	Version int
	Lines   int
	Records int
	Shows   int
	Skipped int
}

// Option customises Parse.
type Option func(*parser)

// WithLogf replaces log.Printf as the sink for skipped record diagnostics.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(p *parser) {
		if logf != nil {
			p.logf = logf
		}
	}
}

type parser struct {
	h     rcg.Handler
	logf  func(format string, args ...any)
	stats Stats
}

// Parse reads a text game log from r and notifies h of every record in file
// order. Header, version and end-of-input failures abort the parse, as do
// read errors and context cancellation. A record that cannot be decoded or
// that h rejects is logged and skipped.
func Parse(ctx context.Context, r io.Reader, h rcg.Handler, opts ...Option) (Stats, error) {
	if h == nil {
		return Stats{}, errors.New("handler is required")
	}
	p := &parser{h: h, logf: log.Printf}
	for _, opt := range opts {
		opt(p)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	headerSeen := false
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return p.stats, err
		}
		p.stats.Lines++
		line := strings.TrimSpace(scanner.Text())
		if !headerSeen {
			if line == "" {
				continue
			}
			version, err := parseHeader(line)
			if err != nil {
				return p.stats, err
			}
			p.stats.Version = version
			if err := h.HandleLogVersion(ctx, version); err != nil {
				return p.stats, fmt.Errorf("log version: %w", err)
			}
			headerSeen = true
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p.record(ctx, line)
	}
	if err := scanner.Err(); err != nil {
		return p.stats, fmt.Errorf("read log: %w", err)
	}
	if !headerSeen {
		return p.stats, ErrEmptyLog
	}
	if err := h.HandleEOF(ctx); err != nil {
		return p.stats, fmt.Errorf("end of log: %w", err)
	}
	return p.stats, nil
}

// parseHeader reads "ULG<n>". Binary logs store the version as a raw byte
// after the magic, which is reported as is so the handler can reject it.
func parseHeader(line string) (int, error) {
	if !strings.HasPrefix(line, "ULG") || len(line) < 4 {
		return 0, ErrUnknownFormat
	}
	rest := line[3:]
	if v, err := strconv.Atoi(rest); err == nil {
		return v, nil
	}
	if rest[0] < '0' {
		return int(rest[0]), nil
	}
	return 0, fmt.Errorf("%w: header %q", ErrUnknownFormat, line)
}

func (p *parser) record(ctx context.Context, line string) {
	kind, err := p.dispatch(ctx, line)
	if err != nil {
		p.stats.Skipped++
		if kind == "" {
			kind = "record"
		}
		p.logf("skip %s line %d: %v", kind, p.stats.Lines, err)
		return
	}
	p.stats.Records++
}

func (p *parser) dispatch(ctx context.Context, line string) (string, error) {
	kind := recordKind(line)
	switch kind {
	// Configuration messages are forwarded verbatim.
	case "server_param":
		return kind, p.h.HandleServerParam(ctx, line)
	case "player_param":
		return kind, p.h.HandlePlayerParam(ctx, line)
	case "player_type":
		return kind, p.h.HandlePlayerType(ctx, line)
	}

	node, err := sexp.Parse(line)
	if err != nil {
		return kind, err
	}
	switch kind {
	case "show":
		show, err := decodeShow(node)
		if err != nil {
			return kind, err
		}
		p.stats.Shows++
		return kind, p.h.HandleShow(ctx, show)
	case "team":
		t, left, right, err := decodeTeam(node)
		if err != nil {
			return kind, err
		}
		return kind, p.h.HandleTeam(ctx, t, left, right)
	case "playmode":
		t, pm, err := decodePlayMode(node)
		if err != nil {
			return kind, err
		}
		return kind, p.h.HandlePlayMode(ctx, t, pm)
	case "msg":
		t, board, msg, err := decodeMsg(node)
		if err != nil {
			return kind, err
		}
		return kind, p.h.HandleMsg(ctx, t, board, msg)
	case "draw":
		t, draw, err := decodeDraw(node)
		if err != nil {
			return kind, err
		}
		return kind, p.h.HandleDraw(ctx, t, draw)
	default:
		return kind, fmt.Errorf("unknown record %q", kind)
	}
}

// recordKind returns the head symbol of a line without parsing the rest.
func recordKind(line string) string {
	if !strings.HasPrefix(line, "(") {
		return ""
	}
	end := strings.IndexAny(line[1:], " \t()")
	if end < 0 {
		return ""
	}
	return line[1 : 1+end]
}
