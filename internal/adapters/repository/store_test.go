package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
)

// storeFactories builds a fresh store per invocation so each scenario
// starts from empty state.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"sqlite": func() Store {
			sq, err := OpenSQLite(filepath.Join(t.TempDir(), "engine.db"))
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			t.Cleanup(func() { _ = sq.Close() })
			return sq
		},
	}
}

func TestAssessmentRoundTrip(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		Convey("Given the "+name+" store", t, func() {
			store := newStore()
			ctx := context.Background()

			Convey("When an assessment is saved and re-read", func() {
				a := model.CognitiveAssessment{
					ID:            "asm-1",
					ChildID:       "child-1",
					Domain:        model.DomainMath,
					Status:        model.StatusInProgress,
					Theta:         0.4,
					StandardError: 0.8,
					StartedAt:     time.Now().UTC(),
				}
				So(store.SaveAssessment(ctx, a), ShouldBeNil)

				got, err := store.Assessment(ctx, "asm-1")
				So(err, ShouldBeNil)
				So(got.ChildID, ShouldEqual, "child-1")
				So(got.Theta, ShouldAlmostEqual, 0.4)

				Convey("And a second save overwrites it", func() {
					a.Status = model.StatusCompleted
					a.Theta = 1.1
					So(store.SaveAssessment(ctx, a), ShouldBeNil)

					got, err := store.Assessment(ctx, "asm-1")
					So(err, ShouldBeNil)
					So(got.Status, ShouldEqual, model.StatusCompleted)
					So(got.Theta, ShouldAlmostEqual, 1.1)
				})
			})

			Convey("When an unknown assessment is requested", func() {
				_, err := store.Assessment(ctx, "nope")
				So(err, ShouldWrap, ErrNotFound)
			})
		})
	}
}

func TestProfileVersioning(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		Convey("Given the "+name+" store", t, func() {
			store := newStore()
			ctx := context.Background()

			Convey("When a fresh profile is written at version zero", func() {
				p := model.CognitiveProfile{
					ChildID: "child-1",
					Domains: map[model.CognitiveDomain]model.DomainResult{
						model.DomainMath: {Score: 1.0, Percentile: 84.1},
					},
					CompositeScore: 1.0,
				}
				saved, err := store.SaveCognitiveProfile(ctx, p)
				So(err, ShouldBeNil)
				So(saved.Version, ShouldEqual, 1)

				Convey("And it reads back at version one", func() {
					got, err := store.CognitiveProfile(ctx, "child-1")
					So(err, ShouldBeNil)
					So(got.Version, ShouldEqual, 1)
					So(got.Domains[model.DomainMath].Percentile, ShouldAlmostEqual, 84.1)
				})

				Convey("And a write from the saved copy succeeds", func() {
					saved.CompositeScore = 1.5
					again, err := store.SaveCognitiveProfile(ctx, saved)
					So(err, ShouldBeNil)
					So(again.Version, ShouldEqual, 2)
				})

				Convey("And a stale write is rejected", func() {
					_, err := store.SaveCognitiveProfile(ctx, p)
					So(err, ShouldWrap, ErrVersionConflict)
				})

				Convey("And a second version-zero insert is rejected", func() {
					fresh := model.CognitiveProfile{ChildID: "child-1"}
					_, err := store.SaveCognitiveProfile(ctx, fresh)
					So(err, ShouldWrap, ErrVersionConflict)
				})
			})

			Convey("When emotional and cognitive profiles share a child", func() {
				cp, err := store.SaveCognitiveProfile(ctx, model.CognitiveProfile{ChildID: "child-2"})
				So(err, ShouldBeNil)
				ep, err := store.SaveEmotionalProfile(ctx, model.EmotionalProfile{
					ChildID:     "child-2",
					Dimensions:  map[model.EmotionalDimension]float64{model.DimEmpathy: 60},
					CompositeEQ: 60,
				})
				So(err, ShouldBeNil)

				Convey("Then they version independently", func() {
					So(cp.Version, ShouldEqual, 1)
					So(ep.Version, ShouldEqual, 1)

					ep2, err := store.SaveEmotionalProfile(ctx, ep)
					So(err, ShouldBeNil)
					So(ep2.Version, ShouldEqual, 2)

					got, err := store.CognitiveProfile(ctx, "child-2")
					So(err, ShouldBeNil)
					So(got.Version, ShouldEqual, 1)
				})
			})

			Convey("When no profile exists", func() {
				_, err := store.CognitiveProfile(ctx, "ghost")
				So(err, ShouldWrap, ErrNotFound)
				_, err = store.EmotionalProfile(ctx, "ghost")
				So(err, ShouldWrap, ErrNotFound)
			})
		})
	}
}

func TestSessionReplay(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		Convey("Given the "+name+" store", t, func() {
			store := newStore()
			ctx := context.Background()
			session := model.ScenarioSession{
				SessionID:    "sess-1",
				ChildID:      "child-1",
				ScenarioID:   "sharing-01",
				ScenarioType: model.ScenarioSharing,
				Completed:    true,
			}

			Convey("When a session is saved twice", func() {
				So(store.SaveSession(ctx, session), ShouldBeNil)
				err := store.SaveSession(ctx, session)

				Convey("Then the replay is rejected", func() {
					So(err, ShouldWrap, ErrDuplicateSession)
				})
			})
		})
	}
}

func TestFamilyContextLifecycle(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		Convey("Given the "+name+" store", t, func() {
			store := newStore()
			ctx := context.Background()
			income := "50k_75k"

			Convey("When a context and multiplier are saved", func() {
				fc := model.FamilyContext{
					ChildID:                "child-1",
					ZipCode:                "94110",
					HouseholdIncomeBracket: income,
				}
				So(store.SaveFamilyContext(ctx, fc), ShouldBeNil)
				So(store.SaveContextMultiplier(ctx, model.ContextMultiplier{
					ChildID:             "child-1",
					AdversityMultiplier: 1.2,
					CalculatedAt:        time.Now().UTC(),
				}), ShouldBeNil)

				Convey("Then both read back", func() {
					got, err := store.FamilyContext(ctx, "child-1")
					So(err, ShouldBeNil)
					So(got.ZipCode, ShouldEqual, "94110")

					m, err := store.ContextMultiplier(ctx, "child-1")
					So(err, ShouldBeNil)
					So(m.AdversityMultiplier, ShouldAlmostEqual, 1.2)
				})

				Convey("And deleting the context removes the multiplier too", func() {
					So(store.DeleteFamilyContext(ctx, "child-1"), ShouldBeNil)

					_, err := store.FamilyContext(ctx, "child-1")
					So(err, ShouldWrap, ErrNotFound)
					_, err = store.ContextMultiplier(ctx, "child-1")
					So(err, ShouldWrap, ErrNotFound)
				})
			})
		})
	}
}

func TestMosaicHistory(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		Convey("Given the "+name+" store", t, func() {
			store := newStore()
			ctx := context.Background()

			Convey("When no composites exist", func() {
				v, err := store.NextMosaicVersion(ctx, "child-1")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 1)

				_, err = store.LatestMosaic(ctx, "child-1")
				So(err, ShouldWrap, ErrNotFound)
			})

			Convey("When three composites are appended", func() {
				for v := 1; v <= 3; v++ {
					So(store.SaveMosaic(ctx, model.MosaicAssessment{
						ID:                 "mos-" + string(rune('0'+v)),
						ChildID:            "child-1",
						Version:            v,
						TruePotentialScore: float64(50 + v),
						CalculatedAt:       time.Now().UTC(),
					}), ShouldBeNil)
				}

				Convey("Then the latest is version three", func() {
					latest, err := store.LatestMosaic(ctx, "child-1")
					So(err, ShouldBeNil)
					So(latest.Version, ShouldEqual, 3)
					So(latest.TruePotentialScore, ShouldAlmostEqual, 53)
				})

				Convey("And history runs newest first", func() {
					hist, err := store.MosaicHistory(ctx, "child-1")
					So(err, ShouldBeNil)
					So(len(hist), ShouldEqual, 3)
					So(hist[0].Version, ShouldEqual, 3)
					So(hist[1].Version, ShouldEqual, 2)
					So(hist[2].Version, ShouldEqual, 1)
				})

				Convey("And the next version is four", func() {
					v, err := store.NextMosaicVersion(ctx, "child-1")
					So(err, ShouldBeNil)
					So(v, ShouldEqual, 4)
				})

				Convey("And another child's history stays empty", func() {
					hist, err := store.MosaicHistory(ctx, "child-other")
					So(err, ShouldBeNil)
					So(hist, ShouldBeEmpty)
				})
			})
		})
	}
}

func TestMosaicVersionCollision(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		Convey("Given the "+name+" store with one composite", t, func() {
			store := newStore()
			ctx := context.Background()

			So(store.SaveMosaic(ctx, model.MosaicAssessment{
				ID:                 "mos-1",
				ChildID:            "child-1",
				Version:            1,
				TruePotentialScore: 51,
				CalculatedAt:       time.Now().UTC(),
			}), ShouldBeNil)

			Convey("When a second composite reuses the version", func() {
				err := store.SaveMosaic(ctx, model.MosaicAssessment{
					ID:                 "mos-2",
					ChildID:            "child-1",
					Version:            1,
					TruePotentialScore: 60,
					CalculatedAt:       time.Now().UTC(),
				})

				Convey("Then the write is rejected and history is untouched", func() {
					So(err, ShouldWrap, ErrVersionConflict)

					hist, err := store.MosaicHistory(ctx, "child-1")
					So(err, ShouldBeNil)
					So(len(hist), ShouldEqual, 1)
					So(hist[0].TruePotentialScore, ShouldAlmostEqual, 51)
				})
			})

			Convey("When another child reuses the version number", func() {
				So(store.SaveMosaic(ctx, model.MosaicAssessment{
					ID:           "mos-3",
					ChildID:      "child-2",
					Version:      1,
					CalculatedAt: time.Now().UTC(),
				}), ShouldBeNil)
			})
		})
	}
}

func TestCounts(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		Convey("Given the "+name+" store with mixed content", t, func() {
			store := newStore()
			ctx := context.Background()

			_, err := store.SaveCognitiveProfile(ctx, model.CognitiveProfile{ChildID: "child-1"})
			So(err, ShouldBeNil)
			_, err = store.SaveEmotionalProfile(ctx, model.EmotionalProfile{ChildID: "child-1"})
			So(err, ShouldBeNil)
			_, err = store.SaveEmotionalProfile(ctx, model.EmotionalProfile{ChildID: "child-2"})
			So(err, ShouldBeNil)

			So(store.SaveAssessment(ctx, model.CognitiveAssessment{ID: "asm-1", ChildID: "child-1"}), ShouldBeNil)
			So(store.SaveSession(ctx, model.ScenarioSession{SessionID: "sess-1", ChildID: "child-1"}), ShouldBeNil)
			So(store.SaveMosaic(ctx, model.MosaicAssessment{ID: "mos-1", ChildID: "child-1", Version: 1}), ShouldBeNil)

			Convey("Then the counts line up", func() {
				st, err := store.Counts(ctx)
				So(err, ShouldBeNil)
				So(st.Children, ShouldEqual, 2)
				So(st.Assessments, ShouldEqual, 1)
				So(st.Sessions, ShouldEqual, 1)
				So(st.Mosaics, ShouldEqual, 1)
			})
		})
	}
}
