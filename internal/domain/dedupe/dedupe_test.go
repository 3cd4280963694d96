package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	dedupe "github.com/carlosrios100/developmental-assessment-sub000/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it should have default configuration", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording submissions", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the submission is new", func() {
				seen := d.SeenAndRecord(context.Background(), dedupe.Key("asm-1", "item-1"))

				Convey("Then it should return false and record the submission", func() {
					So(seen, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the submission was already seen", func() {
				d.SeenAndRecord(context.Background(), dedupe.Key("asm-1", "item-1"))

				seen := d.SeenAndRecord(context.Background(), dedupe.Key("asm-1", "item-1"))

				Convey("Then it should return true", func() {
					So(seen, ShouldBeTrue)
					So(d.Size(), ShouldEqual, 1)
				})
			})

			Convey("And the same item arrives under different assessments", func() {
				first := d.SeenAndRecord(context.Background(), dedupe.Key("asm-1", "item-1"))
				second := d.SeenAndRecord(context.Background(), dedupe.Key("asm-2", "item-1"))

				Convey("Then both are newly recorded", func() {
					So(first, ShouldBeFalse)
					So(second, ShouldBeFalse)
					So(d.Size(), ShouldEqual, 2)
				})
			})

			Convey("And multiple submissions are recorded", func() {
				ids := []string{"sess-1", "sess-2", "sess-3", "sess-4", "sess-5"}

				for _, id := range ids {
					seen := d.SeenAndRecord(context.Background(), id)
					So(seen, ShouldBeFalse)
				}

				Convey("Then all submissions should be recorded", func() {
					So(d.Size(), ShouldEqual, int64(len(ids)))

					for _, id := range ids {
						seen := d.SeenAndRecord(context.Background(), id)
						So(seen, ShouldBeTrue)
					}
				})
			})
		})

		Convey("When unrecording a submission", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(context.Background(), "sess-1")

			d.Unrecord(context.Background(), "sess-1")

			Convey("Then it can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(context.Background(), "sess-1"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording an unknown submission", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(context.Background(), "sess-1")

			d.Unrecord(context.Background(), "never-seen")

			Convey("Then nothing changes", func() {
				So(d.Size(), ShouldEqual, 1)
			})
		})
	})
}

func TestInMemoryDeduperBounded(t *testing.T) {
	Convey("Given a bounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))

		Convey("When more submissions arrive than the bound", func() {
			for i := 0; i < 5; i++ {
				d.SeenAndRecord(context.Background(), fmt.Sprintf("sess-%d", i))
			}

			Convey("Then the size never exceeds the bound", func() {
				So(d.Size(), ShouldEqual, 3)
			})

			Convey("And the newest submissions are still seen", func() {
				So(d.SeenAndRecord(context.Background(), "sess-4"), ShouldBeTrue)
			})
		})

		Convey("When unrecording from the bounded list", func() {
			d.SeenAndRecord(context.Background(), "a")
			d.SeenAndRecord(context.Background(), "b")
			d.SeenAndRecord(context.Background(), "c")

			d.Unrecord(context.Background(), "b")

			Convey("Then only the removed entry is forgotten", func() {
				So(d.Size(), ShouldEqual, 2)
				So(d.SeenAndRecord(context.Background(), "a"), ShouldBeTrue)
				So(d.SeenAndRecord(context.Background(), "c"), ShouldBeTrue)
				So(d.SeenAndRecord(context.Background(), "b"), ShouldBeFalse)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))

		Convey("When many submissions arrive", func() {
			for i := 0; i < 1000; i++ {
				d.SeenAndRecord(context.Background(), fmt.Sprintf("sess-%d", i))
			}

			Convey("Then nothing is evicted", func() {
				So(d.Size(), ShouldEqual, 1000)
				So(d.SeenAndRecord(context.Background(), "sess-0"), ShouldBeTrue)
			})
		})
	})
}

func TestInMemoryDeduperConcurrency(t *testing.T) {
	Convey("Given a deduper shared across goroutines", t, func() {
		d := dedupe.NewInMemoryDeduper()

		Convey("When the same IDs are recorded concurrently", func() {
			const goroutines = 8
			const perGoroutine = 100

			var wg sync.WaitGroup
			var mu sync.Mutex
			newlyRecorded := 0

			for g := 0; g < goroutines; g++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < perGoroutine; i++ {
						if !d.SeenAndRecord(context.Background(), fmt.Sprintf("sess-%d", i)) {
							mu.Lock()
							newlyRecorded++
							mu.Unlock()
						}
					}
				}()
			}
			wg.Wait()

			Convey("Then each ID was recorded exactly once", func() {
				So(newlyRecorded, ShouldEqual, perGoroutine)
				So(d.Size(), ShouldEqual, perGoroutine)
			})
		})
	})
}
