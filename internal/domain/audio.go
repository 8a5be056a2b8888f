package domain

import "time"

// TagNamespace partitions tags between songs and podcasts.
type TagNamespace string

const (
	NamespaceSong    TagNamespace = "song"
	NamespacePodcast TagNamespace = "podcast"
)

// Audio represents an uploaded song or podcast episode.
//
// OwnerIDList is the audio's current owner set (artists / co-authors),
// loaded alongside the row. Visibility is always recomputed from it.
type Audio struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	DurationSec int       `json:"duration_secs"`
	ReleaseDate time.Time `json:"release_date"`
	FileName    string    `json:"-"`
	IsPrivate   bool      `json:"is_private"`
	IsPodcast   bool      `json:"is_podcast"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	OwnerIDList []string `json:"owner_ids"`
	PlayCount   int64    `json:"play_count"`
	Tags        []*Tag   `json:"tags,omitempty"`
}

// Validate validates audio data.
func (a *Audio) Validate() error {
	if a.Title == "" {
		return ErrInvalidTitle
	}
	if len(a.Title) > 200 {
		return ErrTitleTooLong
	}
	if a.DurationSec < 0 {
		return ErrInvalidDuration
	}
	return nil
}

// Namespace returns the tag namespace this audio draws its tags from.
func (a *Audio) Namespace() TagNamespace {
	if a.IsPodcast {
		return NamespacePodcast
	}
	return NamespaceSong
}

// OwnerIDs implements Ownable.
func (a *Audio) OwnerIDs() []string {
	return a.OwnerIDList
}

// Private implements Ownable.
func (a *Audio) Private() bool {
	return a.IsPrivate
}

// Tag represents a label in one of the two namespaces. The namespace is
// fixed at creation and never reclassified.
type Tag struct {
	ID        string       `json:"id"`
	Label     string       `json:"label"`
	Namespace TagNamespace `json:"namespace"`
}

// Listen is one append-only playback event. Events are never updated or
// deleted; play counts and recent-tag discovery derive from them.
type Listen struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	AudioID    string    `json:"audio_id"`
	ListenedAt time.Time `json:"listened_at"`
}
