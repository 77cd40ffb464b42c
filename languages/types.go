package languages

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Language is the reference record identifying a locale by a unique code.
type Language struct {
	bun.BaseModel `bun:"table:languages,alias:lang"`

	ID        uuid.UUID `bun:",pk,type:uuid"                                 json:"id"`
	Code      string    `bun:"code,notnull,unique"                           json:"code"`
	Name      string    `bun:"name"                                          json:"name,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// Is reports whether both values point at the same language record.
func (l *Language) Is(other *Language) bool {
	if l == nil || other == nil {
		return false
	}
	return l.ID == other.ID
}
