package save

import "time"

// Category is the fixed set of save categories the creation form offers.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryBar        Category = "bar"
	CategoryCafe       Category = "cafe"
	CategoryConcert    Category = "concert"
	CategoryEvent      Category = "event"
	CategoryActivity   Category = "activity"
	CategoryTrip       Category = "trip"
	CategoryOther      Category = "other"
)

// SourceType is the classified origin platform of a pasted URL.
// SourceTypeManual is reserved for saves created without a URL.
type SourceType string

const (
	SourceTypeManual     SourceType = "manual"
	SourceTypeGoogleMaps SourceType = "google_maps"
	SourceTypeInstagram  SourceType = "instagram"
	SourceTypeTikTok     SourceType = "tiktok"
	SourceTypeEventbrite SourceType = "eventbrite"
	SourceTypeReddit     SourceType = "reddit"
	SourceTypeOtherURL   SourceType = "other_url"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityFriends Visibility = "friends"
	VisibilityPublic  Visibility = "public"
)

// ParsedLink is the result of attempting to extract place/event metadata
// from a URL. Success and SourceType are always set; every other field is
// independently optional. A non-nil Error does not imply Success is false:
// a link can partially succeed and still carry a warning.
type ParsedLink struct {
	Success      bool       `json:"success"`
	SourceType   SourceType `json:"source_type"`
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Category     *Category  `json:"category"`
	LocationLat  *float64   `json:"location_lat"`
	LocationLng  *float64   `json:"location_lng"`
	LocationName *string    `json:"location_name"`
	Address      *string    `json:"address"`
	ImageURL     *string    `json:"image_url"`
	EventDate    *time.Time `json:"event_date"`
	Error        *string    `json:"error"`
}

// Failed builds a failed result for the given source.
func Failed(sourceType SourceType, errMsg string) ParsedLink {
	return ParsedLink{
		Success:    false,
		SourceType: sourceType,
		Error:      &errMsg,
	}
}

// Partial builds a successful result that carries only a notice, the
// degradation mode used for sources that block scraping.
func Partial(sourceType SourceType, notice string) ParsedLink {
	return ParsedLink{
		Success:    true,
		SourceType: sourceType,
		Error:      &notice,
	}
}
