package model

import (
	"time"

	"github.com/ivankudzin/askbox/backend/internal/domain/enums"
)

// Punishment is the single active sanction for one user. A user has zero or
// one row at any time; applying a new sanction overwrites status and expiry
// in place, there is no history log.
type Punishment struct {
	ID        int64                  `json:"id"`
	UserID    int64                  `json:"user_id"`
	Status    enums.PunishmentStatus `json:"status"`
	ExpiresAt time.Time              `json:"expires_at"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}
