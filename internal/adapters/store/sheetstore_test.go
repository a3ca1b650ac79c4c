package store_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ssaa/navigator/internal/adapters/store"
	"github.com/ssaa/navigator/internal/domain/model"
)

// fakeSheets serves a minimal slice of the Sheets v4 values API backed by an
// in-memory grid per sheet.
type fakeSheets struct {
	grids map[string][][]any
	puts  []string
}

func (f *fakeSheets) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Paths look like /sheet-id/values/Evaluations!A1:ZZ[...].
		parts := strings.SplitN(r.URL.Path, "/values/", 2)
		if len(parts) != 2 {
			http.NotFound(w, r)
			return
		}
		target := parts[1]
		appending := strings.HasSuffix(target, ":append")
		target = strings.TrimSuffix(target, ":append")
		sheet := strings.SplitN(target, "!", 2)[0]

		grid, ok := f.grids[sheet]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Unable to parse range: ` + sheet + `"}}`))
			return
		}

		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{"values": grid})
		case r.Method == http.MethodPost && appending:
			var body struct {
				Values [][]any `json:"values"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			f.grids[sheet] = append(grid, body.Values...)
			_ = json.NewEncoder(w).Encode(map[string]any{})
		case r.Method == http.MethodPut:
			var body struct {
				Values [][]any `json:"values"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			f.puts = append(f.puts, target)
			// Target row is encoded as Sheet!A<n>:<col><n>.
			rowRef := strings.SplitN(target, "!A", 2)[1]
			rowNum := 0
			for _, c := range rowRef {
				if c < '0' || c > '9' {
					break
				}
				rowNum = rowNum*10 + int(c-'0')
			}
			f.grids[sheet][rowNum-1] = body.Values[0]
			_ = json.NewEncoder(w).Encode(map[string]any{})
		default:
			http.NotFound(w, r)
		}
	}
}

func newFakeSheetsStore(t *testing.T) (*store.SheetsStore, *fakeSheets) {
	t.Helper()
	fake := &fakeSheets{
		grids: map[string][][]any{
			model.TableEvaluations: {
				{"ProjectID", "ProjectName", "SS_Vision", "SS_Resonance", "SS_Context", "VV_Market", "VV_Speed", "VV_Friction", "Work_Hours"},
				{"P001", "Next-Gen Payments", "5", "4", "5", "4", "5", "4", "120"},
				{"P002", "Internal SNS Prototype", "5", "2", "3", "2", "2", "1", "40"},
			},
			model.TableHistory: {
				{"ProjectID", "Capture_Date", "SS_Vision", "SS_Resonance", "SS_Context", "VV_Market", "VV_Speed", "VV_Friction"},
			},
		},
	}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	s := store.NewSheetsStore(context.Background(), "sheet-id", "svc@example.iam", "irrelevant",
		store.WithBaseURL(srv.URL),
		store.WithHTTPClient(srv.Client()),
	)
	return s, fake
}

func TestSheetsStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a sheets store against a fake values API", t, func() {
		s, fake := newFakeSheetsStore(t)

		Convey("When listing all evaluations", func() {
			rows, err := s.ListAll(ctx, model.TableEvaluations)

			Convey("Then header columns map onto row values", func() {
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 2)
				So(rows[0][model.ColProjectID], ShouldEqual, "P001")
				So(rows[0][model.ColWorkHours], ShouldEqual, "120")
				So(rows[1][model.ColProjectName], ShouldEqual, "Internal SNS Prototype")
			})
		})

		Convey("When listing a sheet that does not exist", func() {
			_, err := s.ListAll(ctx, "Imaginary")

			Convey("Then the unparsable range maps to table not found", func() {
				So(err, ShouldWrap, store.ErrTableNotFound)
			})
		})

		Convey("When finding a row by key", func() {
			row, err := s.FindByKey(ctx, model.TableEvaluations, model.ColProjectID, "P002")

			Convey("Then the matching row should come back", func() {
				So(err, ShouldBeNil)
				So(row[model.ColVision], ShouldEqual, "5")
			})
		})

		Convey("When updating a field", func() {
			err := s.Update(ctx, model.TableEvaluations, model.ColProjectID, "P002",
				map[string]string{model.ColVision: "3"})
			So(err, ShouldBeNil)

			Convey("Then the row is rewritten in place at its sheet position", func() {
				So(fake.puts, ShouldHaveLength, 1)
				So(fake.puts[0], ShouldStartWith, "Evaluations!A3:")

				row, err := s.FindByKey(ctx, model.TableEvaluations, model.ColProjectID, "P002")
				So(err, ShouldBeNil)
				So(row[model.ColVision], ShouldEqual, "3")
				So(row[model.ColResonance], ShouldEqual, "2")
			})
		})

		Convey("When updating a nonexistent key", func() {
			err := s.Update(ctx, model.TableEvaluations, model.ColProjectID, "P999",
				map[string]string{model.ColVision: "3"})

			Convey("Then it should report row not found without writing", func() {
				So(err, ShouldWrap, store.ErrRowNotFound)
				So(fake.puts, ShouldBeEmpty)
			})
		})

		Convey("When appending a history row", func() {
			So(s.AppendRow(ctx, model.TableHistory, map[string]string{
				model.ColProjectID:   "P001",
				model.ColCaptureDate: "2026-08-31",
				model.ColVision:      "5",
			}), ShouldBeNil)

			Convey("Then the row lands under the history header", func() {
				rows, err := s.ListAll(ctx, model.TableHistory)
				So(err, ShouldBeNil)
				So(rows, ShouldHaveLength, 1)
				So(rows[0][model.ColCaptureDate], ShouldEqual, "2026-08-31")
			})
		})
	})
}
