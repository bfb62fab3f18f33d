package repository_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/hooplens/rotation/internal/adapters/repository"
	"github.com/hooplens/rotation/internal/domain/model"
	"github.com/hooplens/rotation/internal/domain/reconstruct"
)

func result(gameID int64) *reconstruct.Result {
	return &reconstruct.Result{
		GameID: gameID,
		Intervals: []model.SubstitutionInterval{
			{PlayerID: 101, TeamID: 10, TimeIn: 2400, TimeOut: 1800},
		},
		Lineups: []model.LineupRow{
			{GameID: gameID, EventNum: 1, Home: [5]int64{101, 102, 103, 104, 105}},
		},
		PlayingTime: map[int64]float64{101: 600},
	}
}

func TestMemStore(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When a result is stored", func() {
			So(store.Put(ctx, result(1)), ShouldBeNil)

			Convey("Then it is retrievable whole and by part", func() {
				res, err := store.Result(ctx, 1)
				So(err, ShouldBeNil)
				So(res.GameID, ShouldEqual, 1)

				lineups, err := store.Lineups(ctx, 1)
				So(err, ShouldBeNil)
				So(lineups, ShouldHaveLength, 1)

				intervals, err := store.Intervals(ctx, 1)
				So(err, ShouldBeNil)
				So(intervals, ShouldHaveLength, 1)

				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("And restoring the same game replaces the entry", func() {
				So(store.Put(ctx, result(1)), ShouldBeNil)
				So(store.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When an unknown game is requested", func() {
			_, err := store.Result(ctx, 404)

			Convey("Then the lookup fails with not found", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a nil result is stored", func() {
			err := store.Put(ctx, nil)

			Convey("Then the store rejects it", func() {
				So(errors.Is(err, repository.ErrNilResult), ShouldBeTrue)
			})
		})
	})
}

func TestMemStoreCapacity(t *testing.T) {
	Convey("Given a store capped at one game", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore(repository.WithCapacity(1))
		So(store.Put(ctx, result(1)), ShouldBeNil)

		Convey("When a second game arrives", func() {
			err := store.Put(ctx, result(2))

			Convey("Then the store reports it is full", func() {
				So(errors.Is(err, repository.ErrStoreFull), ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 1)
			})
		})

		Convey("When the held game is rewritten", func() {
			err := store.Put(ctx, result(1))

			Convey("Then the rewrite bypasses the capacity check", func() {
				So(err, ShouldBeNil)
			})
		})
	})
}
