package rooms

import "errors"

// Sentinel errors shared between the registry and the ws package.
var (
	ErrRoomClosed = errors.New("room closed")
)
