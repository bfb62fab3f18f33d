package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/hooplens/rotation/internal/adapters/mq/queue"
	"github.com/hooplens/rotation/internal/domain/model"
)

func job(gameID int64) queue.Job {
	return queue.Job{ID: uuid.New(), Game: &model.Game{GameID: gameID}}
}

func TestEnqueueDequeue(t *testing.T) {
	Convey("Given an open queue", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))

		Convey("When jobs are enqueued", func() {
			first := job(1)
			second := job(2)
			So(q.Enqueue(ctx, first), ShouldBeTrue)
			So(q.Enqueue(ctx, second), ShouldBeTrue)
			So(q.Len(ctx), ShouldEqual, 2)

			Convey("Then dequeue delivers them in order", func() {
				jobs := q.Dequeue(ctx)
				So((<-jobs).ID.String(), ShouldEqual, first.ID.String())
				So((<-jobs).ID.String(), ShouldEqual, second.ID.String())
			})
		})
	})
}

func TestEnqueueBackpressure(t *testing.T) {
	Convey("Given a queue at capacity", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(1))
		So(q.Enqueue(ctx, job(1)), ShouldBeTrue)

		Convey("When another job arrives", func() {
			ok := q.Enqueue(ctx, job(2))

			Convey("Then the job is dropped rather than blocking", func() {
				So(ok, ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 1)
			})
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Given a queue with one pending job", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		So(q.Enqueue(ctx, job(1)), ShouldBeTrue)

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then new jobs are rejected", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(ctx, job(2)), ShouldBeFalse)
			})

			Convey("And the dequeue channel drains then closes", func() {
				jobs := q.Dequeue(ctx)
				j, ok := <-jobs
				So(ok, ShouldBeTrue)
				So(j.Game.GameID, ShouldEqual, 1)

				select {
				case _, ok := <-jobs:
					So(ok, ShouldBeFalse)
				case <-time.After(time.Second):
					So("dequeue channel never closed", ShouldBeEmpty)
				}
			})

			Convey("And closing twice is harmless", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}
