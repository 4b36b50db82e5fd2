package dto

import (
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/feed"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

// AuthorDTO is the author snapshot exposed to API consumers.
type AuthorDTO struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
	Verified    bool     `json:"verified"`
	Badges      []string `json:"badges,omitempty"`
}

// LinkPreviewDTO is the rendered preview of the first URL in a post.
type LinkPreviewDTO struct {
	URL      string `json:"url"`
	Title    string `json:"title"`
	SiteName string `json:"site_name,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// CountsDTO exposes the engagement counters.
type CountsDTO struct {
	Likes     int64 `json:"likes"`
	Dislikes  int64 `json:"dislikes"`
	Agrees    int64 `json:"agrees"`
	Disagrees int64 `json:"disagrees"`
	Comments  int64 `json:"comments"`
	Shares    int64 `json:"shares"`
	Views     int64 `json:"views"`
}

// PostDTO exposes the fields API consumers need. IDs are hex strings to
// keep transport simple; internal fields (embedding, report counters)
// stay hidden.
type PostDTO struct {
	ID          string          `json:"id"`
	Author      AuthorDTO       `json:"author"`
	Body        string          `json:"body"`
	Tags        []string        `json:"tags,omitempty"`
	IsPolitical bool            `json:"is_political"`
	LinkPreview *LinkPreviewDTO `json:"link_preview,omitempty"`
	Counts      CountsDTO       `json:"counts"`
	CreatedAt   time.Time       `json:"created_at"`
	IsLiked     *bool           `json:"is_liked,omitempty"`
}

// NewPostDTO maps a post document to its transport shape.
func NewPostDTO(p models.Post) PostDTO {
	d := PostDTO{
		ID: p.ID.Hex(),
		Author: AuthorDTO{
			ID:          p.Author.ID.Hex(),
			Username:    p.Author.Username,
			DisplayName: p.Author.DisplayName,
			AvatarURL:   p.Author.AvatarURL,
			Verified:    p.Author.Verified,
			Badges:      p.Author.Badges,
		},
		Body:        p.Body,
		Tags:        p.Tags,
		IsPolitical: p.IsPolitical,
		Counts: CountsDTO{
			Likes:     p.Counts.Likes,
			Dislikes:  p.Counts.Dislikes,
			Agrees:    p.Counts.Agrees,
			Disagrees: p.Counts.Disagrees,
			Comments:  p.Counts.Comments,
			Shares:    p.Counts.Shares,
			Views:     p.Counts.Views,
		},
		CreatedAt: p.CreatedAt,
	}
	if p.LinkPreview != nil {
		d.LinkPreview = &LinkPreviewDTO{
			URL:      p.LinkPreview.URL,
			Title:    p.LinkPreview.Title,
			SiteName: p.LinkPreview.SiteName,
			Excerpt:  p.LinkPreview.Excerpt,
			ImageURL: p.LinkPreview.ImageURL,
		}
	}
	return d
}

// NewFeedPostDTO maps a feed item, attaching the per-viewer liked flag.
func NewFeedPostDTO(item feed.Item) PostDTO {
	d := NewPostDTO(item.Post)
	liked := item.IsLiked
	d.IsLiked = &liked
	return d
}
