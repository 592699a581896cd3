package domain

// DashboardSummary is the aggregated view returned by
// GET /api/v1/dashboard/summary.
type DashboardSummary struct {
	Contacts struct {
		Status string    `json:"status"`
		Recent []Contact `json:"recent"`
	} `json:"contacts"`
	Leads struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	} `json:"leads"`
	Opportunities struct {
		Status     string  `json:"status"`
		Count      int     `json:"count"`
		TotalValue float64 `json:"total_value"`
	} `json:"opportunities"`
	Activities struct {
		Status   string `json:"status"`
		Overdue  int    `json:"overdue"`
		DueToday int    `json:"due_today"`
	} `json:"activities"`
	Timestamp int64 `json:"timestamp"`
}

// DashboardMetrics is returned by GET /api/v1/dashboard/metrics.
type DashboardMetrics struct {
	ContactsCount      int     `json:"contacts_count"`
	LeadsCount         int     `json:"leads_count"`
	OpportunitiesCount int     `json:"opportunities_count"`
	ActivitiesCount    int     `json:"activities_count"`
	RevenueThisMonth   float64 `json:"revenue_this_month"`
	RevenueThisQuarter float64 `json:"revenue_this_quarter"`
	PipelineValue      float64 `json:"pipeline_value"`
	ConversionRate     float64 `json:"conversion_rate"`
}

// ChartPoint is one datum of a dashboard chart series.
type ChartPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
}

// TopPerformers is returned by GET /api/v1/dashboard/top-performers.
type TopPerformers struct {
	TopSalesReps []struct {
		Name    string  `json:"name"`
		Revenue float64 `json:"revenue"`
		Deals   int     `json:"deals"`
	} `json:"top_sales_reps"`
	TopLeadSources []struct {
		Source         string  `json:"source"`
		Count          int     `json:"count"`
		ConversionRate float64 `json:"conversion_rate"`
	} `json:"top_lead_sources"`
	TopCompanies []struct {
		Company       string  `json:"company"`
		Revenue       float64 `json:"revenue"`
		Opportunities int     `json:"opportunities"`
	} `json:"top_companies"`
}
