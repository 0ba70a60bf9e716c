package rcg

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupportedVersion is returned for logs older than MinLogVersion. It is
// fatal for the whole stream.
var ErrUnsupportedVersion = errors.New("unsupported rcg version")

// Handler receives decoded log records in time order. A non-nil error from
// HandleLogVersion or HandleEOF stops the stream; errors from the other
// methods only drop the record that caused them.
type Handler interface {
	HandleLogVersion(ctx context.Context, version int) error
	HandleEOF(ctx context.Context) error
	HandleShow(ctx context.Context, show Show) error
	HandleMsg(ctx context.Context, time uint32, board int, msg string) error
	HandleDraw(ctx context.Context, time uint32, draw Draw) error
	HandlePlayMode(ctx context.Context, time uint32, pm PlayMode) error
	HandleTeam(ctx context.Context, time uint32, left, right Team) error
	HandleServerParam(ctx context.Context, msg string) error
	HandlePlayerParam(ctx context.Context, msg string) error
	HandlePlayerType(ctx context.Context, msg string) error
}

// CheckVersion rejects log versions that predate the text show format.
func CheckVersion(version int) error {
	if version < MinLogVersion {
		return fmt.Errorf("%w %d", ErrUnsupportedVersion, version)
	}
	return nil
}
