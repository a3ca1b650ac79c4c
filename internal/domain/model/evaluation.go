// Package model contains domain models passed between layers and the column
// mapping between spreadsheet rows and typed records.
package model

import (
	"strconv"
	"strings"
)

// Logical table names in the backing row store.
const (
	TableEvaluations = "Evaluations"
	TableSettings    = "Settings"
	TableHistory     = "History"
)

// Evaluation column names. These mirror the spreadsheet header row.
const (
	ColProjectID     = "ProjectID"
	ColProjectName   = "ProjectName"
	ColVision        = "SS_Vision"
	ColResonance     = "SS_Resonance"
	ColContext       = "SS_Context"
	ColMarket        = "VV_Market"
	ColSpeed         = "VV_Speed"
	ColFriction      = "VV_Friction"
	ColWorkHours     = "Work_Hours"
	ColAssetVolume   = "Asset_Volume" // legacy alias for Work_Hours, read-only
	ColLeadPerson    = "Lead_Person"
	ColStatus        = "Status"
	ColInsight       = "SSAA_Insight"
	ColTargetRevenue = "Target_Revenue"
	ColActualRevenue = "Actual_Revenue"
	ColTargetProfit  = "Target_Profit"
	ColActualProfit  = "Actual_Profit"
	ColKPIName       = "KPI_Name"
	ColKPITarget     = "KPI_Target"
	ColKPIActual     = "KPI_Actual"
	ColDecisionDate  = "Decision_Date"
	ColVerdict       = "Verdict"
)

// Settings and History specific columns.
const (
	ColKey         = "Key"
	ColValue       = "Value"
	ColCaptureDate = "Capture_Date"
	ColBatchID     = "Batch_ID"
)

// Row is one record from the row store: column name -> string value.
type Row map[string]string

// Status is the operational traffic-light state of a project.
type Status string

// Status values.
const (
	StatusGreen  Status = "Green"
	StatusYellow Status = "Yellow"
	StatusRed    Status = "Red"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusGreen, StatusYellow, StatusRed:
		return true
	}
	return false
}

// Verdict is the decision state of a project.
type Verdict string

// Verdict values.
const (
	VerdictPending  Verdict = "Pending"
	VerdictScaleUp  Verdict = "Scale-up"
	VerdictExit     Verdict = "Exit"
	VerdictArchived Verdict = "Archived"
)

// IsValid reports whether v is a known verdict.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictPending, VerdictScaleUp, VerdictExit, VerdictArchived:
		return true
	}
	return false
}

// Evaluation is one tracked project with its six ordinal ratings and
// operational, financial and decision attributes.
type Evaluation struct {
	ID   string
	Name string

	// Strategic Sync triad, each in [1,5].
	VisionScore    int
	ResonanceScore int
	ContextScore   int

	// Value Velocity triad, each in [1,5].
	MarketScore   int
	SpeedScore    int
	FrictionScore int

	WorkHours   float64
	LeadPerson  string
	Status      Status
	InsightNote string

	TargetRevenue float64
	ActualRevenue float64
	TargetProfit  float64
	ActualProfit  float64

	KPIName   string
	KPITarget float64
	KPIActual float64

	DecisionDate string
	Verdict      Verdict
}

// EvaluationFromRow coerces a raw row into a typed Evaluation. Missing or
// malformed numeric cells become 0, so downstream computations stay total.
// The legacy Asset_Volume column is honored when Work_Hours is absent.
func EvaluationFromRow(r Row) Evaluation {
	hours := coerceFloat(r[ColWorkHours])
	if strings.TrimSpace(r[ColWorkHours]) == "" {
		hours = coerceFloat(r[ColAssetVolume])
	}

	return Evaluation{
		ID:             r[ColProjectID],
		Name:           r[ColProjectName],
		VisionScore:    coerceInt(r[ColVision]),
		ResonanceScore: coerceInt(r[ColResonance]),
		ContextScore:   coerceInt(r[ColContext]),
		MarketScore:    coerceInt(r[ColMarket]),
		SpeedScore:     coerceInt(r[ColSpeed]),
		FrictionScore:  coerceInt(r[ColFriction]),
		WorkHours:      hours,
		LeadPerson:     r[ColLeadPerson],
		Status:         Status(r[ColStatus]),
		InsightNote:    r[ColInsight],
		TargetRevenue:  coerceFloat(r[ColTargetRevenue]),
		ActualRevenue:  coerceFloat(r[ColActualRevenue]),
		TargetProfit:   coerceFloat(r[ColTargetProfit]),
		ActualProfit:   coerceFloat(r[ColActualProfit]),
		KPIName:        r[ColKPIName],
		KPITarget:      coerceFloat(r[ColKPITarget]),
		KPIActual:      coerceFloat(r[ColKPIActual]),
		DecisionDate:   r[ColDecisionDate],
		Verdict:        Verdict(r[ColVerdict]),
	}
}

// HistoryRow builds the append-only snapshot row for an evaluation, stamped
// with a capture date and batch id.
func HistoryRow(e Evaluation, captureDate, batchID string) Row {
	return Row{
		ColProjectID:     e.ID,
		ColProjectName:   e.Name,
		ColCaptureDate:   captureDate,
		ColBatchID:       batchID,
		ColVision:        strconv.Itoa(e.VisionScore),
		ColResonance:     strconv.Itoa(e.ResonanceScore),
		ColContext:       strconv.Itoa(e.ContextScore),
		ColMarket:        strconv.Itoa(e.MarketScore),
		ColSpeed:         strconv.Itoa(e.SpeedScore),
		ColFriction:      strconv.Itoa(e.FrictionScore),
		ColWorkHours:     formatFloat(e.WorkHours),
		ColTargetRevenue: formatFloat(e.TargetRevenue),
		ColActualRevenue: formatFloat(e.ActualRevenue),
		ColTargetProfit:  formatFloat(e.TargetProfit),
		ColActualProfit:  formatFloat(e.ActualProfit),
		ColKPITarget:     formatFloat(e.KPITarget),
		ColKPIActual:     formatFloat(e.KPIActual),
	}
}

// RatingColumns lists the six ordinal rating columns.
func RatingColumns() []string {
	return []string{ColVision, ColResonance, ColContext, ColMarket, ColSpeed, ColFriction}
}

// IsRatingColumn reports whether col holds a 1-5 ordinal rating.
func IsRatingColumn(col string) bool {
	switch col {
	case ColVision, ColResonance, ColContext, ColMarket, ColSpeed, ColFriction:
		return true
	}
	return false
}

func coerceInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// Some sheets export integer cells as "4.0".
		f, ferr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return n
}

func coerceFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
