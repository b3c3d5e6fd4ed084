package save

import (
	"fmt"
	"time"
)

// Draft holds the user-editable state of the save/idea creation form.
// A ParsedLink is merged into it field by field; nothing the user has
// already typed is ever overwritten.
type Draft struct {
	Title        string
	Description  string
	Category     Category
	LocationLat  *float64
	LocationLng  *float64
	LocationName string
	Address      string
	SourceURL    string
	SourceType   SourceType
	ImageURL     string
	EventDate    *time.Time
	Tags         string
	Visibility   Visibility

	// Notice carries a non-blocking message from the last merge
	// (e.g. a partial-extraction warning). It never prevents saving.
	Notice string
}

// NewDraft returns a draft with the form's default values.
func NewDraft() *Draft {
	return &Draft{
		Category:   CategoryOther,
		SourceType: SourceTypeManual,
		Visibility: VisibilityFriends,
	}
}

// Merge fills draft fields from a parsed link. A field is only written
// when it is still at its default value, so a slow parse result cannot
// clobber text the user typed in the meantime.
func (d *Draft) Merge(p ParsedLink) {
	if d.SourceType == "" || d.SourceType == SourceTypeManual {
		d.SourceType = p.SourceType
	}
	if d.Title == "" && p.Title != nil {
		d.Title = *p.Title
	}
	if d.Description == "" && p.Description != nil {
		d.Description = *p.Description
	}
	if (d.Category == "" || d.Category == CategoryOther) && p.Category != nil {
		d.Category = *p.Category
	}
	if d.LocationLat == nil && p.LocationLat != nil {
		d.LocationLat = p.LocationLat
	}
	if d.LocationLng == nil && p.LocationLng != nil {
		d.LocationLng = p.LocationLng
	}
	if d.LocationName == "" && p.LocationName != nil {
		d.LocationName = *p.LocationName
	}
	if d.Address == "" && p.Address != nil {
		d.Address = *p.Address
	}
	if d.ImageURL == "" && p.ImageURL != nil {
		d.ImageURL = *p.ImageURL
	}
	if d.EventDate == nil && p.EventDate != nil {
		d.EventDate = p.EventDate
	}

	// A coordinate-only result still needs a readable location field.
	if d.LocationName == "" && d.Address == "" && d.LocationLat != nil && d.LocationLng != nil {
		d.LocationName = FallbackLocationLabel(*d.LocationLat, *d.LocationLng)
	}

	if p.Error != nil {
		d.Notice = *p.Error
	}
}

// FallbackLocationLabel renders raw coordinates as a human-readable
// location label with a marker prefix and fixed 5-decimal precision.
func FallbackLocationLabel(lat, lng float64) string {
	return fmt.Sprintf("📍 %.5f, %.5f", lat, lng)
}
