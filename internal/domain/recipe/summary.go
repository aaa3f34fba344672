package recipe

import "math"

// Summary is the normalized, source-agnostic shape the browse pipeline
// operates on. Local recipes and external catalog records are both mapped
// into this type by their adapters before aggregation; the pipeline never
// sees a raw row from either source.
type Summary struct {
	// ID is unique within its source only. The local id space and the
	// external catalog id space are never assumed disjoint.
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Area     string `json:"area,omitempty"`
	ImageURL string `json:"image_url,omitempty"`

	// External reports whether this summary came from the live catalog.
	// A local record that mirrors a catalog recipe keeps External false
	// and carries the catalog id in ExternalID instead.
	External   bool   `json:"is_external"`
	ExternalID string `json:"external_id,omitempty"`

	AverageRating float64 `json:"average_rating"`
	RatingsCount  int     `json:"ratings_count"`

	// Author fields are set only for local, user-authored recipes.
	AuthorID   string `json:"author_id,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
}

// Key returns the identity used for deduplication and list keys:
// the (source, id) pair, since ids are only unique per source.
func (s Summary) Key() string {
	if s.External {
		return "ext:" + s.ID
	}
	return "loc:" + s.ID
}

// normalized returns a copy with malformed numeric fields defensively
// reset, so rating filters and sorts never see missing or garbage values.
func (s Summary) normalized() Summary {
	if math.IsNaN(s.AverageRating) || math.IsInf(s.AverageRating, 0) || s.AverageRating < 0 {
		s.AverageRating = 0
	}
	if s.RatingsCount < 0 {
		s.RatingsCount = 0
	}
	return s
}
