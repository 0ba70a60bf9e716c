package projection

import (
	"context"
	"errors"

	"github.com/louisbranch/rcg2csv/internal/rcg"
)

var _ rcg.Handler = (*Dispatcher)(nil)

// Dispatcher routes notifications to the enabled tables. A nil table drops
// its notifications.
type Dispatcher struct {
	Match        *MatchTable
	ServerParams *ServerParamTable
	PlayerParams *PlayerParamTable
	PlayerTypes  *PlayerTypeTable
}

// HandleLogVersion rejects logs older than rcg.MinLogVersion.
func (d *Dispatcher) HandleLogVersion(_ context.Context, version int) error {
	return rcg.CheckVersion(version)
}

// HandleEOF flushes every enabled table.
func (d *Dispatcher) HandleEOF(context.Context) error {
	var errs []error
	if d.Match != nil {
		errs = append(errs, d.Match.Flush())
	}
	if d.ServerParams != nil {
		errs = append(errs, d.ServerParams.Flush())
	}
	if d.PlayerParams != nil {
		errs = append(errs, d.PlayerParams.Flush())
	}
	if d.PlayerTypes != nil {
		errs = append(errs, d.PlayerTypes.Flush())
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) HandleShow(ctx context.Context, show rcg.Show) error {
	if d.Match == nil {
		return nil
	}
	return d.Match.HandleShow(ctx, show)
}

func (d *Dispatcher) HandleMsg(context.Context, uint32, int, string) error {
	return nil
}

func (d *Dispatcher) HandleDraw(context.Context, uint32, rcg.Draw) error {
	return nil
}

func (d *Dispatcher) HandlePlayMode(ctx context.Context, time uint32, pm rcg.PlayMode) error {
	if d.Match == nil {
		return nil
	}
	return d.Match.HandlePlayMode(ctx, time, pm)
}

func (d *Dispatcher) HandleTeam(ctx context.Context, time uint32, left, right rcg.Team) error {
	if d.Match == nil {
		return nil
	}
	return d.Match.HandleTeam(ctx, time, left, right)
}

func (d *Dispatcher) HandleServerParam(ctx context.Context, msg string) error {
	if d.ServerParams == nil {
		return nil
	}
	return d.ServerParams.HandleServerParam(ctx, msg)
}

func (d *Dispatcher) HandlePlayerParam(ctx context.Context, msg string) error {
	if d.PlayerParams == nil {
		return nil
	}
	return d.PlayerParams.HandlePlayerParam(ctx, msg)
}

func (d *Dispatcher) HandlePlayerType(ctx context.Context, msg string) error {
	if d.PlayerTypes == nil {
		return nil
	}
	return d.PlayerTypes.HandlePlayerType(ctx, msg)
}
