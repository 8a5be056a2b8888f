package domain

import "time"

// PlaylistKind distinguishes ordinary playlists from the per-user
// favorites playlist created at signup.
type PlaylistKind string

const (
	KindNormal    PlaylistKind = "normal"
	KindFavorites PlaylistKind = "favorites"
	KindOther     PlaylistKind = "other"
)

// Playlist represents a user-curated collection of audios.
//
// OwnerIDList holds the collaborator set. Membership of an audio in a
// playlist is independent of the audio's own owner set; per-viewer audio
// visibility is re-checked whenever members are listed.
type Playlist struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	IsPrivate   bool         `json:"is_private"`
	IsAlbum     bool         `json:"is_album"`
	Kind        PlaylistKind `json:"kind"`
	ImageURL    string       `json:"image_url"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	OwnerIDList []string `json:"owner_ids"`
	Audios      []*Audio `json:"audios,omitempty"`
	Followers   int64    `json:"followers,omitempty"`
}

// Validate validates playlist data.
func (p *Playlist) Validate() error {
	if p.Name == "" {
		return ErrInvalidName
	}
	if len(p.Name) > 100 {
		return ErrNameTooLong
	}
	if len(p.Description) > 500 {
		return ErrDescriptionTooLong
	}
	return nil
}

// OwnerIDs implements Ownable.
func (p *Playlist) OwnerIDs() []string {
	return p.OwnerIDList
}

// Private implements Ownable.
func (p *Playlist) Private() bool {
	return p.IsPrivate
}

// PlaylistFollow is a follower edge with its last-listened timestamp.
type PlaylistFollow struct {
	PlaylistID     string    `json:"playlist_id"`
	UserID         string    `json:"user_id"`
	LastListenedAt time.Time `json:"last_listened_at"`
}
