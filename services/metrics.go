package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LeadsSubmitted counts successfully stored leads per landing page slug
	LeadsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metanoia",
		Name:      "leads_submitted_total",
		Help:      "Leads stored through public landing page forms.",
	}, []string{"landing_page"})

	// LandingPageViews counts public renders of active landing pages
	LandingPageViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metanoia",
		Name:      "landing_page_views_total",
		Help:      "Public landing page renders.",
	}, []string{"landing_page"})

	// DashboardCountFailures counts collections whose dashboard count failed
	DashboardCountFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "metanoia",
		Name:      "dashboard_count_failures_total",
		Help:      "Failed per-collection counts while building dashboard statistics.",
	}, []string{"collection"})
)

// FailedLogins counts rejected admin sign-ins
var FailedLogins = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "metanoia",
	Name:      "failed_logins_total",
	Help:      "Rejected admin console sign-in attempts.",
})
