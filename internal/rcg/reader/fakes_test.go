package reader

import (
	"context"
	"errors"

	"github.com/louisbranch/rcg2csv/internal/rcg"
)

type teamCall struct {
	time        uint32
	left, right rcg.Team
}

type fakeHandler struct {
	versions     []int
	eofs         int
	shows        []rcg.Show
	msgs         []string
	draws        []rcg.Draw
	playModes    []rcg.PlayMode
	teams        []teamCall
	serverParams []string
	playerParams []string
	playerTypes  []string

	versionErr error
	eofErr     error
	showErr    error
}

func (f *fakeHandler) HandleLogVersion(_ context.Context, version int) error {
	f.versions = append(f.versions, version)
	if f.versionErr != nil {
		return f.versionErr
	}
	return rcg.CheckVersion(version)
}

func (f *fakeHandler) HandleEOF(context.Context) error {
	f.eofs++
	return f.eofErr
}

func (f *fakeHandler) HandleShow(_ context.Context, show rcg.Show) error {
	if f.showErr != nil {
		return f.showErr
	}
	f.shows = append(f.shows, show)
	return nil
}

func (f *fakeHandler) HandleMsg(_ context.Context, _ uint32, _ int, msg string) error {
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeHandler) HandleDraw(_ context.Context, _ uint32, draw rcg.Draw) error {
	f.draws = append(f.draws, draw)
	return nil
}

func (f *fakeHandler) HandlePlayMode(_ context.Context, _ uint32, pm rcg.PlayMode) error {
	f.playModes = append(f.playModes, pm)
	return nil
}

func (f *fakeHandler) HandleTeam(_ context.Context, time uint32, left, right rcg.Team) error {
	f.teams = append(f.teams, teamCall{time: time, left: left, right: right})
	return nil
}

func (f *fakeHandler) HandleServerParam(_ context.Context, msg string) error {
	f.serverParams = append(f.serverParams, msg)
	if len(f.serverParams) > 1 {
		return errors.New("duplicate server_param")
	}
	return nil
}

func (f *fakeHandler) HandlePlayerParam(_ context.Context, msg string) error {
	f.playerParams = append(f.playerParams, msg)
	return nil
}

func (f *fakeHandler) HandlePlayerType(_ context.Context, msg string) error {
	f.playerTypes = append(f.playerTypes, msg)
	return nil
}

type logCapture struct {
	lines []string
}

func (l *logCapture) logf(format string, _ ...any) {
	l.lines = append(l.lines, format)
}
