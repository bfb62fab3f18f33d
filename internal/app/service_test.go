package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	service "github.com/hooplens/rotation/internal/app"
	"github.com/hooplens/rotation/internal/gamegen"
	"github.com/hooplens/rotation/pkg/logger"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func eventually(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given an unstarted service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(2), service.WithQueueSize(16))

		Convey("When a game is submitted before Start", func() {
			_, err := svc.Submit(ctx, gamegen.Generate(gamegen.Config{Seed: 1}))

			Convey("Then the submission is rejected", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When the service starts", func() {
			So(svc.Start(ctx), ShouldBeNil)
			Reset(svc.Stop)

			Convey("Then starting again is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stats report the running configuration", func() {
				stats := svc.Stats(ctx)
				So(stats["started"], ShouldBeTrue)
				So(stats["workerCount"], ShouldEqual, 2)
				So(stats, ShouldContainKey, "queueLength")
				So(stats, ShouldContainKey, "storedGames")
			})
		})
	})
}

func TestServiceSubmit(t *testing.T) {
	Convey("Given a running service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(2), service.WithQueueSize(16))
		So(svc.Start(ctx), ShouldBeNil)
		Reset(svc.Stop)

		game := gamegen.Generate(gamegen.Config{Seed: 5, GameID: 500, SubsPerPeriod: 2})

		Convey("When the game is submitted", func() {
			jobID, err := svc.Submit(ctx, game)

			Convey("Then a job id is issued and the result eventually lands", func() {
				So(err, ShouldBeNil)
				So(jobID.String(), ShouldNotEqual, uuid.Nil.String())

				So(eventually(3*time.Second, func() bool {
					_, err := svc.Result(ctx, game.GameID)
					return err == nil
				}), ShouldBeTrue)

				lineups, err := svc.Lineups(ctx, game.GameID)
				So(err, ShouldBeNil)
				So(lineups, ShouldHaveLength, len(game.Events))

				intervals, err := svc.Intervals(ctx, game.GameID)
				So(err, ShouldBeNil)
				So(intervals, ShouldNotBeEmpty)
			})

			Convey("And resubmitting the same game id is refused", func() {
				So(err, ShouldBeNil)
				_, err := svc.Submit(ctx, game)
				So(errors.Is(err, service.ErrDuplicateGame), ShouldBeTrue)
			})
		})
	})
}

func TestServiceProcess(t *testing.T) {
	Convey("Given a running service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithWorkerCount(1))
		So(svc.Start(ctx), ShouldBeNil)
		Reset(svc.Stop)

		game := gamegen.Generate(gamegen.Config{Seed: 9, GameID: 900, SubsPerPeriod: 2})

		Convey("When the game is processed synchronously", func() {
			res, err := svc.Process(ctx, game)

			Convey("Then the result is returned and stored", func() {
				So(err, ShouldBeNil)
				So(res.Lineups, ShouldHaveLength, len(game.Events))

				stored, err := svc.Result(ctx, game.GameID)
				So(err, ShouldBeNil)
				So(stored, ShouldEqual, res)
			})

			Convey("And processing it again returns the stored result", func() {
				So(err, ShouldBeNil)
				again, err := svc.Process(ctx, game)
				So(err, ShouldBeNil)
				So(again, ShouldEqual, res)
			})
		})

		Convey("When a broken game is processed", func() {
			broken := gamegen.Generate(gamegen.Config{Seed: 9, GameID: 901})
			broken.VisitorTeamID = broken.HomeTeamID
			_, err := svc.Process(ctx, broken)

			Convey("Then the failure surfaces and the game may be resubmitted", func() {
				So(err, ShouldNotBeNil)
				_, err := svc.Process(ctx, broken)
				So(err, ShouldNotBeNil)
			})
		})
	})
}
