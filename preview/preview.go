// Package preview turns the first URL of a post body into a stored link
// preview: headless render, then content extraction.
package preview

import (
	"context"
	"time"

	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/logger"
	"github.com/UnitedWeRise-org/UnitedWeRise-sub005/models"
)

// Build renders and extracts the given URL into a link preview. Callers
// pass a URL they already pulled out of a post body with FirstURL.
// Headless rendering is tried first; a plain fetch covers environments
// without Chrome and server-rendered pages.
func Build(ctx context.Context, pageURL string) (*models.LinkPreview, error) {
	htmlStr, err := RenderHTML(pageURL)
	if err != nil {
		logger.WarnWithFields("headless render failed, falling back to plain fetch", logger.Fields{
			"url":   pageURL,
			"error": err.Error(),
		})
		htmlStr, err = FetchHTML(ctx, pageURL)
		if err != nil {
			return nil, err
		}
	}

	page, err := ExtractPage(htmlStr, pageURL)
	if err != nil {
		return nil, err
	}

	return &models.LinkPreview{
		URL:       pageURL,
		Title:     page.Title,
		SiteName:  page.SiteName,
		Excerpt:   page.Excerpt,
		ImageURL:  page.ImageURL,
		FetchedAt: time.Now(),
	}, nil
}
