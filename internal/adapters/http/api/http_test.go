package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/ssaa/navigator/internal/adapters/http/api"
	"github.com/ssaa/navigator/internal/adapters/store"
	service "github.com/ssaa/navigator/internal/app"
	"github.com/ssaa/navigator/internal/domain/model"
	"github.com/ssaa/navigator/internal/domain/types"
	"github.com/ssaa/navigator/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mem := store.NewMemStore(
		store.WithSeedRows(model.TableEvaluations, model.SampleEvaluations()),
		store.WithSeedRows(model.TableSettings, model.SampleSettings()),
	)
	svc := service.New(service.WithStore(mem))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("failed to start service: %v", err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return mux
}

func doJSON(mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestGetData(t *testing.T) {
	Convey("Given the API over the sample portfolio", t, func() {
		mux := newTestMux(t)

		Convey("When fetching GET /data", func() {
			rec := doJSON(mux, http.MethodGet, "/data", nil)

			Convey("Then the dashboard payload should come back", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("X-Request-ID"), ShouldNotBeEmpty)

				var data types.DashboardData
				So(json.Unmarshal(rec.Body.Bytes(), &data), ShouldBeNil)
				So(data.Projects, ShouldHaveLength, 4)
				So(data.Settings, ShouldContainKey, "North_Star")

				for _, p := range data.Projects {
					if p.ID == "P001" {
						So(p.SyncPct, ShouldAlmostEqual, 94, 1e-9)
						So(p.VelocityPct, ShouldAlmostEqual, 88, 1e-9)
						So(p.Quadrant, ShouldEqual, "Star")
					}
				}
			})
		})
	})
}

func TestPostData(t *testing.T) {
	Convey("Given the API over the sample portfolio", t, func() {
		mux := newTestMux(t)

		Convey("When updating an evaluation", func() {
			rec := doJSON(mux, http.MethodPost, "/data", map[string]any{
				"target":  "Evaluations",
				"id":      "P001",
				"updates": map[string]string{"SS_Vision": "2"},
			})

			Convey("Then the update should succeed and be visible", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"success":true`)

				get := doJSON(mux, http.MethodGet, "/data", nil)
				var data types.DashboardData
				So(json.Unmarshal(get.Body.Bytes(), &data), ShouldBeNil)
				for _, p := range data.Projects {
					if p.ID == "P001" {
						So(p.VisionScore, ShouldEqual, 2)
					}
				}
			})
		})

		Convey("When updating an unknown evaluation", func() {
			rec := doJSON(mux, http.MethodPost, "/data", map[string]any{
				"target":  "Evaluations",
				"id":      "P999",
				"updates": map[string]string{"SS_Vision": "2"},
			})

			Convey("Then it should 404 with an error payload", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				So(rec.Body.String(), ShouldContainSubstring, `"error"`)
			})
		})

		Convey("When updating with an out-of-range rating", func() {
			rec := doJSON(mux, http.MethodPost, "/data", map[string]any{
				"target":  "Evaluations",
				"id":      "P001",
				"updates": map[string]string{"SS_Vision": "9"},
			})

			Convey("Then validation should reject it with 400", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When upserting a setting that does not exist", func() {
			rec := doJSON(mux, http.MethodPost, "/data", map[string]any{
				"target":  "Settings",
				"id":      "Review_Cadence",
				"updates": map[string]string{"Value": "monthly"},
			})

			Convey("Then the settings write should auto-create the entry", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				get := doJSON(mux, http.MethodGet, "/data", nil)
				var data types.DashboardData
				So(json.Unmarshal(get.Body.Bytes(), &data), ShouldBeNil)
				So(data.Settings["Review_Cadence"], ShouldEqual, "monthly")
			})
		})

		Convey("When triggering a snapshot", func() {
			rec := doJSON(mux, http.MethodPost, "/data", map[string]any{
				"target": "Snapshot",
			})

			Convey("Then the response should carry per-row counts", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"appended":4`)
				So(rec.Body.String(), ShouldContainSubstring, `"failed":0`)
			})
		})

		Convey("When posting an unknown target", func() {
			rec := doJSON(mux, http.MethodPost, "/data", map[string]any{
				"target": "Widgets",
			})

			Convey("Then it should 400", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "unknown target")
			})
		})

		Convey("When posting a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/data", bytes.NewBufferString("{"))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it should 400", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When using an unsupported method", func() {
			rec := doJSON(mux, http.MethodDelete, "/data", nil)

			Convey("Then it should 404", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestStats(t *testing.T) {
	Convey("Given the API", t, func() {
		mux := newTestMux(t)

		Convey("When fetching GET /stats", func() {
			rec := doJSON(mux, http.MethodGet, "/stats", nil)

			Convey("Then service stats should come back as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"started":true`)
			})
		})
	})
}

func TestHealthz(t *testing.T) {
	Convey("Given the API", t, func() {
		mux := newTestMux(t)

		Convey("When fetching GET /healthz", func() {
			rec := doJSON(mux, http.MethodGet, "/healthz", nil)

			Convey("Then Prometheus metrics should be served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}
