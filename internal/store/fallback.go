package store

import (
	"time"

	"github.com/Rickychen930/sing4you-sub002/internal/models"
)

// Fallback is the read-only stand-in used when the database cannot be
// opened: the public site keeps rendering with canned content instead of
// going dark. It intentionally implements only ContentReader — nothing
// financial can be served or written through it.
type Fallback struct{}

func NewFallback() *Fallback {
	return &Fallback{}
}

func (f *Fallback) GetAllPerformances() ([]models.Performance, error) {
	return []models.Performance{
		{
			ID:          "fallback-performance-1",
			Title:       "An Evening of Song",
			Venue:       "City Recital Hall",
			Date:        time.Now().AddDate(0, 1, 0),
			Description: "A solo vocal recital spanning classical and contemporary repertoire.",
			Status:      "upcoming",
		},
		{
			ID:          "fallback-performance-2",
			Title:       "Wedding Season Showcase",
			Venue:       "The Grand Ballroom",
			Date:        time.Now().AddDate(0, 2, 0),
			Description: "Live ceremony and reception repertoire, open to prospective couples.",
			Status:      "upcoming",
		},
	}, nil
}

func (f *Fallback) GetAllTestimonials() ([]models.Testimonial, error) {
	return []models.Testimonial{
		{
			ID:     "fallback-testimonial-1",
			Author: "Sarah & James",
			Quote:  "The highlight of our wedding day. Guests are still talking about the ceremony music.",
			Event:  "Wedding, 2024",
		},
		{
			ID:     "fallback-testimonial-2",
			Author: "Riverside Council",
			Quote:  "Professional, punctual and an absolute pleasure to host at our summer series.",
			Event:  "Summer Concert Series",
		},
	}, nil
}
