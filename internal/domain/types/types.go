// Package types contains the wire-facing view types shared between the app
// service and the HTTP API.
package types

// AxisPoint is a (sync, velocity) position on the scatter plot.
type AxisPoint struct {
	Sync     float64 `json:"sync"`
	Velocity float64 `json:"velocity"`
}

// TrailView is a movement trail from the last snapshot to the current
// position, drawn as a line on the dashboard.
type TrailView struct {
	From AxisPoint `json:"from"`
	To   AxisPoint `json:"to"`
}

// ProjectView is one project's evaluation with its derived metrics attached.
type ProjectView struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	VisionScore    int `json:"visionScore"`
	ResonanceScore int `json:"resonanceScore"`
	ContextScore   int `json:"contextScore"`
	MarketScore    int `json:"marketScore"`
	SpeedScore     int `json:"speedScore"`
	FrictionScore  int `json:"frictionScore"`

	WorkHours   float64 `json:"workHours"`
	LeadPerson  string  `json:"leadPerson"`
	Status      string  `json:"status"`
	InsightNote string  `json:"insightNote"`

	TargetRevenue float64 `json:"targetRevenue"`
	ActualRevenue float64 `json:"actualRevenue"`
	TargetProfit  float64 `json:"targetProfit"`
	ActualProfit  float64 `json:"actualProfit"`

	KPIName   string  `json:"kpiName"`
	KPITarget float64 `json:"kpiTarget"`
	KPIActual float64 `json:"kpiActual"`

	DecisionDate string `json:"decisionDate"`
	Verdict      string `json:"verdict"`

	SyncPct        float64    `json:"syncPct"`
	VelocityPct    float64    `json:"velocityPct"`
	Quadrant       string     `json:"quadrant"`
	Color          string     `json:"color"`
	AssetSharePct  float64    `json:"assetSharePct"`
	ReturnOnHours  float64    `json:"returnOnHours"`
	Trail          *TrailView `json:"trail,omitempty"`
}

// DashboardData is the GET /data payload.
type DashboardData struct {
	Projects []ProjectView        `json:"projects"`
	Settings map[string]string    `json:"settings"`
	History  map[string]AxisPoint `json:"history"`
}

// SnapshotResult reports per-row outcomes of one snapshot operation. Failed
// appends are counted, not rolled back; the store has no transaction boundary.
type SnapshotResult struct {
	Appended int `json:"appended"`
	Failed   int `json:"failed"`
}
