package adaptive

import (
	"context"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
)

// memBank is a fixed in-memory item bank for engine tests.
type memBank struct {
	items []model.TestItem
}

func (b *memBank) Item(_ context.Context, id string) (model.TestItem, error) {
	for _, it := range b.items {
		if it.ID == id {
			return it, nil
		}
	}
	return model.TestItem{}, fmt.Errorf("item %s: %w", id, ErrItemPoolExhausted)
}

func (b *memBank) ItemsForDomain(_ context.Context, domain model.CognitiveDomain) ([]model.TestItem, error) {
	var out []model.TestItem
	for _, it := range b.items {
		if it.Domain == domain {
			out = append(out, it)
		}
	}
	return out, nil
}

// bankOf builds n math items with difficulties spread across [-3,3],
// all eligible for the full age range.
func bankOf(n int) *memBank {
	items := make([]model.TestItem, 0, n)
	for i := range n {
		b := -3.0 + 6.0*float64(i)/float64(n-1)
		items = append(items, model.TestItem{
			ID:             fmt.Sprintf("item-%02d", i),
			Domain:         model.DomainMath,
			Difficulty:     b,
			Discrimination: 1.5,
			Guessing:       0.2,
			MinAgeMonths:   0,
			MaxAgeMonths:   72,
			Content:        model.ItemContent{Type: "choice", CorrectAnswer: []string{"a"}},
		})
	}
	return &memBank{items: items}
}

// runSession answers every item until the engine stops, answering
// correctly when answer() says so.
func runSession(t *testing.T, e *Engine, answer func(step int) bool) (model.CognitiveAssessment, model.StoppingReason) {
	t.Helper()
	ctx := context.Background()
	a, item, err := e.Start(ctx, "child-1", model.DomainMath, 36)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for step := 0; ; step++ {
		response := []string{"b"}
		if answer(step) {
			response = []string{"a"}
		}
		out, err := e.Respond(ctx, &a, item.ID, response, 1500)
		if err != nil {
			t.Fatalf("respond at step %d: %v", step, err)
		}
		if out.Complete {
			return a, out.StoppingReason
		}
		if out.NextItem == nil {
			t.Fatalf("incomplete outcome without next item at step %d", step)
		}
		item = *out.NextItem
		if step > DefaultMaxItems+5 {
			t.Fatalf("session did not terminate within %d items", DefaultMaxItems)
		}
	}
}

func TestEngineTermination(t *testing.T) {
	Convey("Given a deep item bank", t, func() {
		e := New(bankOf(100))

		Convey("When a child answers every item correctly", func() {
			a, reason := runSession(t, e, func(int) bool { return true })

			Convey("Then the session stops within the item cap with a recorded reason", func() {
				So(a.ItemsAdministered, ShouldBeLessThanOrEqualTo, DefaultMaxItems)
				So(a.ItemsAdministered, ShouldBeGreaterThanOrEqualTo, DefaultMinItems)
				So(a.Status, ShouldEqual, model.StatusCompleted)
				So(reason, ShouldBeIn, model.StopTargetSE, model.StopMaxItems, model.StopItemPoolExhausted)
				So(a.Theta, ShouldBeGreaterThan, 0)
				So(a.Percentile, ShouldBeGreaterThan, 50)
			})
		})

		Convey("When answers alternate", func() {
			a, _ := runSession(t, e, func(step int) bool { return step%2 == 0 })

			Convey("Then the ability estimate stays near the middle of the scale", func() {
				So(a.Status, ShouldEqual, model.StatusCompleted)
				So(a.Theta, ShouldBeBetween, -1.5, 1.5)
			})
		})

		Convey("When a session runs to completion", func() {
			a, _ := runSession(t, e, func(step int) bool { return step%3 != 0 })

			Convey("Then no item is administered twice", func() {
				seen := make(map[string]bool)
				for _, h := range a.History {
					So(seen[h.Item.ID], ShouldBeFalse)
					seen[h.Item.ID] = true
				}
			})

			Convey("Then the raw score maps theta onto the 0-100 scale", func() {
				So(a.RawScore, ShouldBeBetween, 0, 100)
			})
		})
	})
}

func TestEngineMinItemsRule(t *testing.T) {
	Convey("Given highly discriminating items that shrink the error quickly", t, func() {
		bank := bankOf(60)
		for i := range bank.items {
			bank.items[i].Discrimination = 2.5
			bank.items[i].Guessing = 0
		}
		e := New(bank)
		ctx := context.Background()

		Convey("When responses arrive one by one", func() {
			a, item, err := e.Start(ctx, "child-1", model.DomainMath, 36)
			So(err, ShouldBeNil)

			completedAt := 0
			for step := 0; completedAt == 0; step++ {
				response := []string{"b"}
				if step%2 == 0 {
					response = []string{"a"}
				}
				out, err := e.Respond(ctx, &a, item.ID, response, 1200)
				So(err, ShouldBeNil)
				if out.Complete {
					completedAt = a.ItemsAdministered
					break
				}
				item = *out.NextItem
			}

			Convey("Then the session never stops before the minimum item count", func() {
				So(completedAt, ShouldBeGreaterThanOrEqualTo, DefaultMinItems)
			})
		})
	})
}

func TestEnginePoolExhaustion(t *testing.T) {
	Convey("Given a bank with only three items", t, func() {
		e := New(bankOf(3))

		Convey("When a session consumes them all", func() {
			a, reason := runSession(t, e, func(int) bool { return true })

			Convey("Then it completes early with the pool marked exhausted", func() {
				So(a.ItemsAdministered, ShouldEqual, 3)
				So(reason, ShouldEqual, model.StopItemPoolExhausted)
				So(a.Status, ShouldEqual, model.StatusCompleted)
			})
		})
	})

	Convey("Given a bank with no age-eligible items at all", t, func() {
		e := New(&memBank{})

		Convey("When a session starts", func() {
			_, _, err := e.Start(context.Background(), "child-1", model.DomainMath, 36)

			Convey("Then it fails with pool exhaustion", func() {
				So(err, ShouldWrap, ErrItemPoolExhausted)
			})
		})
	})
}

func TestEngineAgeWindow(t *testing.T) {
	Convey("Given items whose age band misses the child by a few months", t, func() {
		bank := bankOf(5)
		for i := range bank.items {
			bank.items[i].MinAgeMonths = 40
			bank.items[i].MaxAgeMonths = 48
		}
		e := New(bank)

		Convey("When a 36-month-old starts a session", func() {
			_, item, err := e.Start(context.Background(), "child-1", model.DomainMath, 36)

			Convey("Then the widened window still yields an item", func() {
				So(err, ShouldBeNil)
				So(item.ID, ShouldNotBeEmpty)
			})
		})

		Convey("When the gap exceeds the widened window", func() {
			_, _, err := e.Start(context.Background(), "child-1", model.DomainMath, 24)

			Convey("Then the pool is exhausted", func() {
				So(err, ShouldWrap, ErrItemPoolExhausted)
			})
		})
	})
}

func TestEngineGuards(t *testing.T) {
	ctx := context.Background()

	Convey("Given a running session", t, func() {
		e := New(bankOf(40))
		a, item, err := e.Start(ctx, "child-1", model.DomainMath, 36)
		So(err, ShouldBeNil)

		Convey("When the same item is answered twice", func() {
			_, err := e.Respond(ctx, &a, item.ID, []string{"a"}, 1000)
			So(err, ShouldBeNil)
			_, err = e.Respond(ctx, &a, item.ID, []string{"a"}, 1000)

			Convey("Then the duplicate is rejected", func() {
				So(err, ShouldWrap, ErrDuplicateItem)
			})
		})

		Convey("When the session is abandoned", func() {
			So(e.Abandon(ctx, &a), ShouldBeNil)

			Convey("Then its status and stopping reason record the cancellation", func() {
				So(a.Status, ShouldEqual, model.StatusAbandoned)
				So(a.StoppingReason, ShouldEqual, model.StopCancelled)
			})

			Convey("Then further responses are rejected", func() {
				_, err := e.Respond(ctx, &a, item.ID, []string{"a"}, 1000)
				So(err, ShouldWrap, ErrNotInProgress)
			})

			Convey("Then abandoning twice is rejected", func() {
				So(e.Abandon(ctx, &a), ShouldWrap, ErrNotInProgress)
			})
		})

		Convey("When an unknown domain is requested", func() {
			_, _, err := e.Start(ctx, "child-1", "astrology", 36)

			Convey("Then it is rejected", func() {
				So(err, ShouldWrap, ErrUnknownDomain)
			})
		})
	})
}

func TestApplyResult(t *testing.T) {
	Convey("Given an empty cognitive profile", t, func() {
		p := &model.CognitiveProfile{ChildID: "child-1"}

		Convey("When one domain result is applied", func() {
			ApplyResult(p, model.DomainMath, 1.0, 84.13)

			Convey("Then the composite mirrors the single domain and no tertiles form", func() {
				So(p.Domains, ShouldHaveLength, 1)
				So(p.CompositeScore, ShouldAlmostEqual, p.Domains[model.DomainMath].Score, 1e-9)
				So(p.Strengths, ShouldBeEmpty)
				So(p.GrowthAreas, ShouldBeEmpty)
			})
		})

		Convey("When all five domains are applied with distinct abilities", func() {
			ApplyResult(p, model.DomainMath, 2.0, 97.7)
			ApplyResult(p, model.DomainLogic, 1.0, 84.1)
			ApplyResult(p, model.DomainVerbal, 0.0, 50.0)
			ApplyResult(p, model.DomainSpatial, -1.0, 15.9)
			ApplyResult(p, model.DomainMemory, -2.0, 2.3)

			Convey("Then the top tertile is a strength and the bottom a growth area", func() {
				So(p.Strengths, ShouldContain, model.DomainMath)
				So(p.GrowthAreas, ShouldContain, model.DomainMemory)
				So(p.Strengths, ShouldNotContain, model.DomainMemory)
				So(p.GrowthAreas, ShouldNotContain, model.DomainMath)
			})

			Convey("Then re-applying a domain replaces its entry rather than appending", func() {
				ApplyResult(p, model.DomainMath, 0.5, 69.1)
				So(p.Domains, ShouldHaveLength, 5)
			})
		})
	})
}
