package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentLibrarySize is how many default entries the daily content library
// holds. Day-of-year lookups clamp to this size, so Dec 31 of a leap year
// reuses the last entry rather than erroring.
const ContentLibrarySize = 365

// DailyContent is one default tip/quote entry, keyed by day of year (1..365).
// The library is seeded round-robin from a fixed list.
type DailyContent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DayOfYear int                `bson:"dayOfYear" json:"dayOfYear"`
	Tip       string             `bson:"tip,omitempty" json:"tip,omitempty"`
	Quote     string             `bson:"quote,omitempty" json:"quote,omitempty"`
	Author    string             `bson:"author,omitempty" json:"author,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ContentOverride replaces the default content for one exact calendar date.
// When present it wins verbatim, even if only partially filled.
type ContentOverride struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DateKey   string             `bson:"dateKey" json:"dateKey"` // ISO date, e.g. "2024-05-01"
	Tip       string             `bson:"tip,omitempty" json:"tip,omitempty"`
	Quote     string             `bson:"quote,omitempty" json:"quote,omitempty"`
	Author    string             `bson:"author,omitempty" json:"author,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DateKey formats t as the ISO date key used by overrides.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ContentDayOfYear maps t's day of year into the library range 1..365.
// Day 366 of a leap year reuses the last entry.
func ContentDayOfYear(t time.Time) int {
	if d := t.YearDay(); d < ContentLibrarySize {
		return d
	}
	return ContentLibrarySize
}
