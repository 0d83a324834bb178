package models

import "time"

// ReactionKind is one of the six fixed engagement labels.
type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionLove  ReactionKind = "love"
	ReactionHaha  ReactionKind = "haha"
	ReactionWow   ReactionKind = "wow"
	ReactionSad   ReactionKind = "sad"
	ReactionAngry ReactionKind = "angry"
)

// ValidReactionKinds lists every accepted reaction kind.
var ValidReactionKinds = []ReactionKind{
	ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad, ReactionAngry,
}

// IsValid reports whether k is one of the six accepted kinds.
func (k ReactionKind) IsValid() bool {
	switch k {
	case ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad, ReactionAngry:
		return true
	}
	return false
}

// Reaction records a user's single reaction on a post.
// The combination of PostID and UserID must be unique.
type Reaction struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	PostID    uint         `gorm:"not null;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_post_user" json:"user_id"`
	Kind      ReactionKind `gorm:"type:varchar(10);not null;default:'like'" json:"type"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
