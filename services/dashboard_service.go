package services

import (
	"context"
	"sort"
	"sync"

	"metanoia_app_go/models"

	zlog "github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Dashboard collections
const (
	CollectionTalks        = "talks"
	CollectionCourses      = "courses"
	CollectionContents     = "contents"
	CollectionContacts     = "contacts"
	CollectionLandingPages = "landing_pages"
	CollectionUsers        = "users"
	CollectionLeads        = "leads"
)

type dashboardCollection struct {
	name  string
	model interface{}
}

var dashboardCollections = []dashboardCollection{
	{CollectionTalks, &models.Talk{}},
	{CollectionCourses, &models.Course{}},
	{CollectionContents, &models.Content{}},
	{CollectionContacts, &models.ContactMessage{}},
	{CollectionLandingPages, &models.LandingPage{}},
	{CollectionUsers, &models.User{}},
	{CollectionLeads, &models.Lead{}},
}

// DashboardStats holds one count per collection. A collection listed in
// Failed could not be counted and its count must not be shown as zero.
type DashboardStats struct {
	Counts  map[string]int64 `json:"counts"`
	Failed  []string         `json:"failed"`
	Loading bool             `json:"loading"`
}

// Count returns the count for a collection
func (s DashboardStats) Count(collection string) int64 {
	return s.Counts[collection]
}

// HasFailed reports whether counting collection failed
func (s DashboardStats) HasFailed(collection string) bool {
	for _, f := range s.Failed {
		if f == collection {
			return true
		}
	}
	return false
}

// DashboardService aggregates admin dashboard statistics
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a dashboard service over db
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// Stats counts every collection concurrently and waits for all of them.
// A failing count is logged and reported in Failed without affecting the others.
func (s *DashboardService) Stats(ctx context.Context) DashboardStats {
	stats := DashboardStats{
		Counts: make(map[string]int64, len(dashboardCollections)),
		Failed: []string{},
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for _, col := range dashboardCollections {
		col := col
		g.Go(func() error {
			var count int64
			err := s.db.WithContext(ctx).Model(col.model).Count(&count).Error

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				zlog.Error().Err(err).Str("collection", col.name).Msg("Failed to count dashboard collection")
				DashboardCountFailures.WithLabelValues(col.name).Inc()
				stats.Failed = append(stats.Failed, col.name)
				return nil
			}
			stats.Counts[col.name] = count
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(stats.Failed)
	return stats
}
