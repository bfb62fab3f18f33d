package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager(WithRegistry(prometheus.NewRegistry()))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithRegistry(prometheus.NewRegistry()),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty or nil option values", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithRegistry(nil),
			)

			Convey("Then the defaults survive", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestRecording(t *testing.T) {
	Convey("Given the package-level recorders", t, func() {
		Convey("When recording reconstruction outcomes", func() {
			So(func() {
				RecordGameReconstructed()
				RecordGameFailed()
				RecordGameDuplicate()
				RecordReconstructLatency(0.002)
				RecordLineupRows(450)
				RecordIntervalsBuilt(60)
			}, ShouldNotPanic)
		})

		Convey("When recording queue health", func() {
			So(func() {
				UpdateQueueSize(10)
				UpdateQueueCapacity(1024)
				UpdateQueueUtilization(0.01)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
			}, ShouldNotPanic)
		})

		Convey("When recording worker and store gauges", func() {
			So(func() {
				UpdateWorkerCount(4)
				UpdateWorkerCount(0)
				UpdateStoredGames(100)
			}, ShouldNotPanic)
		})

		Convey("When recording component errors", func() {
			So(func() {
				RecordErrorByComponent("queue", "queue_full")
				RecordErrorByComponent("worker", "reconstruct_error")
				RecordErrorByComponent("", "")
			}, ShouldNotPanic)
		})
	})
}

func TestHandler(t *testing.T) {
	Convey("Given a manager with recorded metrics", t, func() {
		manager := NewManager()
		manager.gamesReconstructed.Inc()

		Convey("When the scrape endpoint is hit", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			manager.Handler().ServeHTTP(rec, req)

			Convey("Then the exposition includes the namespaced metric", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(strings.Contains(rec.Body.String(), "rotation_engine_games_reconstructed_total"), ShouldBeTrue)
			})
		})
	})
}

func TestConcurrentRecording(t *testing.T) {
	Convey("Given concurrent recorders", t, func() {
		done := make(chan bool, 8)
		for i := 0; i < 8; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					RecordGameReconstructed()
					UpdateQueueSize(j)
					RecordReconstructLatency(float64(j) / 1000)
				}
				done <- true
			}()
		}
		for i := 0; i < 8; i++ {
			<-done
		}

		Convey("Then concurrent access never panics", func() {
			So(true, ShouldBeTrue)
		})
	})
}
