package storage

import (
	"context"

	"github.com/rumbledev/restaurant-rumble/internal/model"
)

// Storage defines the interface for data persistence.
//
// Sessions are saved whole: the backing stores cannot patch a single
// roster entry, so every mutation rewrites the full document. SaveSession
// is a compare-and-set on Session.Version and fails with
// model.ErrVersionConflict when another writer got there first.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// Session operations
	CreateSession(ctx context.Context, session *model.Session) error
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	GetSessionsByShortCode(ctx context.Context, code model.ShortCode) ([]*model.Session, error)
	ShortCodeExists(ctx context.Context, code model.ShortCode) (bool, error)
}
