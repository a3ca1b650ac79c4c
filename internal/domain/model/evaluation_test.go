package model_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ssaa/navigator/internal/domain/model"
)

func TestEvaluationFromRow(t *testing.T) {
	Convey("Given a fully populated row", t, func() {
		row := model.Row{
			model.ColProjectID:     "P010",
			model.ColProjectName:   "Edge Cache",
			model.ColVision:        "5",
			model.ColResonance:     "4",
			model.ColContext:       "5",
			model.ColMarket:        "4",
			model.ColSpeed:         "5",
			model.ColFriction:      "4",
			model.ColWorkHours:     "32.5",
			model.ColLeadPerson:    "Sato",
			model.ColStatus:        "Green",
			model.ColInsight:       "steady",
			model.ColTargetRevenue: "1000",
			model.ColActualRevenue: "900",
			model.ColTargetProfit:  "200",
			model.ColActualProfit:  "-50",
			model.ColKPIName:       "signups",
			model.ColKPITarget:     "10",
			model.ColKPIActual:     "7",
			model.ColDecisionDate:  "2026-12-01",
			model.ColVerdict:       "Pending",
		}

		Convey("When coercing it to an Evaluation", func() {
			e := model.EvaluationFromRow(row)

			Convey("Then every field should carry over typed", func() {
				So(e.ID, ShouldEqual, "P010")
				So(e.Name, ShouldEqual, "Edge Cache")
				So(e.VisionScore, ShouldEqual, 5)
				So(e.ResonanceScore, ShouldEqual, 4)
				So(e.ContextScore, ShouldEqual, 5)
				So(e.MarketScore, ShouldEqual, 4)
				So(e.SpeedScore, ShouldEqual, 5)
				So(e.FrictionScore, ShouldEqual, 4)
				So(e.WorkHours, ShouldEqual, 32.5)
				So(e.Status, ShouldEqual, model.StatusGreen)
				So(e.ActualProfit, ShouldEqual, -50)
				So(e.Verdict, ShouldEqual, model.VerdictPending)
			})
		})
	})

	Convey("Given a row with malformed and missing numerics", t, func() {
		row := model.Row{
			model.ColProjectID: "P011",
			model.ColVision:    "five",
			model.ColMarket:    "",
			model.ColWorkHours: "n/a",
		}

		Convey("When coercing it", func() {
			e := model.EvaluationFromRow(row)

			Convey("Then malformed cells should default to zero", func() {
				So(e.VisionScore, ShouldEqual, 0)
				So(e.MarketScore, ShouldEqual, 0)
				So(e.WorkHours, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a row using the legacy Asset_Volume column", t, func() {
		row := model.Row{
			model.ColProjectID:   "P012",
			model.ColAssetVolume: "64",
		}

		Convey("When Work_Hours is absent", func() {
			e := model.EvaluationFromRow(row)

			Convey("Then Asset_Volume should be read as work hours", func() {
				So(e.WorkHours, ShouldEqual, 64)
			})
		})

		Convey("When Work_Hours is present as well", func() {
			row[model.ColWorkHours] = "48"
			e := model.EvaluationFromRow(row)

			Convey("Then Work_Hours should win", func() {
				So(e.WorkHours, ShouldEqual, 48)
			})
		})
	})

	Convey("Given a sheet-style float rating cell", t, func() {
		row := model.Row{model.ColVision: "4.0"}

		Convey("When coercing it", func() {
			e := model.EvaluationFromRow(row)

			Convey("Then the rating should parse as an integer", func() {
				So(e.VisionScore, ShouldEqual, 4)
			})
		})
	})
}

func TestHistoryRow(t *testing.T) {
	Convey("Given an evaluation", t, func() {
		e := model.EvaluationFromRow(model.SampleEvaluations()[0])

		Convey("When building its history row", func() {
			row := model.HistoryRow(e, "2026-08-31", "batch-1")

			Convey("Then it should carry ratings, hours, financials and stamps", func() {
				So(row[model.ColProjectID], ShouldEqual, "P001")
				So(row[model.ColCaptureDate], ShouldEqual, "2026-08-31")
				So(row[model.ColBatchID], ShouldEqual, "batch-1")
				So(row[model.ColVision], ShouldEqual, "5")
				So(row[model.ColWorkHours], ShouldEqual, "120")
				So(row[model.ColActualProfit], ShouldEqual, "72000")
			})
		})
	})
}

func TestEnums(t *testing.T) {
	Convey("Given the status and verdict enums", t, func() {
		Convey("Then known values should validate", func() {
			So(model.StatusGreen.IsValid(), ShouldBeTrue)
			So(model.StatusYellow.IsValid(), ShouldBeTrue)
			So(model.StatusRed.IsValid(), ShouldBeTrue)
			So(model.Status("Blue").IsValid(), ShouldBeFalse)

			So(model.VerdictPending.IsValid(), ShouldBeTrue)
			So(model.VerdictScaleUp.IsValid(), ShouldBeTrue)
			So(model.VerdictExit.IsValid(), ShouldBeTrue)
			So(model.VerdictArchived.IsValid(), ShouldBeTrue)
			So(model.Verdict("Maybe").IsValid(), ShouldBeFalse)
		})
	})

	Convey("Given the rating column helpers", t, func() {
		Convey("Then all six rating columns should be recognized", func() {
			So(model.RatingColumns(), ShouldHaveLength, 6)
			for _, col := range model.RatingColumns() {
				So(model.IsRatingColumn(col), ShouldBeTrue)
			}
			So(model.IsRatingColumn(model.ColWorkHours), ShouldBeFalse)
		})
	})
}
