package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/adapters/content"
	repository "github.com/carlosrios100/developmental-assessment-sub000/internal/adapters/repository"
	service "github.com/carlosrios100/developmental-assessment-sub000/internal/app"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/adaptive"
	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
)

func testItems(domain model.CognitiveDomain, n int) []model.TestItem {
	items := make([]model.TestItem, n)
	for i := 0; i < n; i++ {
		items[i] = model.TestItem{
			ID:             fmt.Sprintf("%s-%03d", domain, i),
			Domain:         domain,
			Difficulty:     -3 + 6*float64(i)/float64(n-1),
			Discrimination: 1.5,
			Guessing:       0.2,
			MinAgeMonths:   0,
			MaxAgeMonths:   72,
			Content: model.ItemContent{
				Type:          "multiple_choice",
				Prompt:        fmt.Sprintf("question %d", i),
				Options:       []string{"a", "b", "c"},
				CorrectAnswer: []string{"a"},
			},
		}
	}
	return items
}

func startService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	store := content.NewMemoryStore(
		content.WithItems(testItems(model.DomainMath, 40)...),
	)
	base := []service.Option{service.WithContentStore(store), service.WithWorkerCount(2)}
	svc := service.New(append(base, opts...)...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

// runToCompletion answers every served item correctly until the
// session completes.
func runToCompletion(ctx context.Context, svc *service.Service, a model.CognitiveAssessment, first model.TestItem) (service.ResponseOutcome, error) {
	item := first
	for i := 0; i < 50; i++ {
		out, err := svc.SubmitAdaptiveResponse(ctx, a.ID, item.ID, []string{"a"}, 1500)
		if err != nil {
			return service.ResponseOutcome{}, err
		}
		if out.Complete {
			return out, nil
		}
		item = *out.NextItem
	}
	return service.ResponseOutcome{}, fmt.Errorf("session did not complete")
}

func TestAdaptiveFlow(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startService(t)
		ctx := context.Background()

		Convey("When a full adaptive session runs", func() {
			a, first, err := svc.StartAdaptiveTest(ctx, "child-1", model.DomainMath, 36)
			So(err, ShouldBeNil)
			So(first.ID, ShouldNotBeEmpty)

			out, err := runToCompletion(ctx, svc, a, first)
			So(err, ShouldBeNil)

			Convey("Then the session completes with a positive theta", func() {
				So(out.Complete, ShouldBeTrue)
				So(out.Theta, ShouldBeGreaterThan, 0)
			})

			Convey("And the result lands in the cognitive profile", func() {
				profiles, err := svc.Profiles(ctx, "child-1")
				So(err, ShouldBeNil)
				So(profiles.Cognitive, ShouldNotBeNil)
				So(profiles.Cognitive.Domains, ShouldContainKey, model.DomainMath)
				So(profiles.Cognitive.Version, ShouldEqual, 1)
			})

			Convey("And the stored assessment is completed", func() {
				stored, err := svc.Assessment(ctx, a.ID)
				So(err, ShouldBeNil)
				So(stored.Status, ShouldEqual, model.StatusCompleted)
			})
		})

		Convey("When the same answer is submitted twice", func() {
			a, first, err := svc.StartAdaptiveTest(ctx, "child-2", model.DomainMath, 36)
			So(err, ShouldBeNil)

			out1, err := svc.SubmitAdaptiveResponse(ctx, a.ID, first.ID, []string{"a"}, 1500)
			So(err, ShouldBeNil)
			out2, err := svc.SubmitAdaptiveResponse(ctx, a.ID, first.ID, []string{"a"}, 1500)
			So(err, ShouldBeNil)

			Convey("Then the replay is flagged and nothing is re-scored", func() {
				So(out1.Duplicate, ShouldBeFalse)
				So(out2.Duplicate, ShouldBeTrue)

				stored, err := svc.Assessment(ctx, a.ID)
				So(err, ShouldBeNil)
				So(stored.ItemsAdministered, ShouldEqual, 1)
			})

			Convey("And the replay carries the recorded outcome", func() {
				So(out2.Correct, ShouldEqual, out1.Correct)
				So(out2.Theta, ShouldAlmostEqual, out1.Theta, 1e-9)
				So(out2.StandardError, ShouldAlmostEqual, out1.StandardError, 1e-9)
				So(out2.Complete, ShouldEqual, out1.Complete)
			})
		})

		Convey("When a session is abandoned", func() {
			a, _, err := svc.StartAdaptiveTest(ctx, "child-3", model.DomainMath, 36)
			So(err, ShouldBeNil)

			abandoned, err := svc.AbandonTest(ctx, a.ID)
			So(err, ShouldBeNil)

			Convey("Then no profile is written", func() {
				So(abandoned.Status, ShouldEqual, model.StatusAbandoned)
				_, err := svc.Profiles(ctx, "child-3")
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})

		Convey("When an unknown assessment receives a response", func() {
			_, err := svc.SubmitAdaptiveResponse(ctx, "ghost", "item-1", []string{"a"}, 1000)
			So(err, ShouldWrap, repository.ErrNotFound)

			Convey("And a retry of the same pair is not treated as a duplicate", func() {
				_, err := svc.SubmitAdaptiveResponse(ctx, "ghost", "item-1", []string{"a"}, 1000)
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})

		Convey("When an unknown domain is requested", func() {
			_, _, err := svc.StartAdaptiveTest(ctx, "child-4", "astrology", 36)
			So(err, ShouldWrap, adaptive.ErrUnknownDomain)
		})
	})
}

func TestQuestionnaireFlow(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startService(t)
		ctx := context.Background()

		responses := make([]model.QuestionnaireResponse, 0, 30)
		for _, d := range model.QuestionnaireDomains() {
			for i := 0; i < 6; i++ {
				responses = append(responses, model.QuestionnaireResponse{
					ItemID:   fmt.Sprintf("%s-%d", d, i),
					Domain:   d,
					Response: model.ResponseYes,
				})
			}
		}

		Convey("When an all-yes questionnaire is scored at 18 months", func() {
			result, err := svc.ScoreQuestionnaire(ctx, "child-1", 18, responses)
			So(err, ShouldBeNil)

			Convey("Then every domain is typical", func() {
				So(result.OverallRisk, ShouldEqual, model.RiskTypical)
				So(len(result.DomainScores), ShouldEqual, 5)
				for _, ds := range result.DomainScores {
					So(ds.RawScore, ShouldEqual, 60)
					So(ds.RiskLevel, ShouldEqual, model.RiskTypical)
				}
			})
		})

		Convey("When the response set is incomplete", func() {
			_, err := svc.ScoreQuestionnaire(ctx, "child-1", 18, responses[:12])
			So(err, ShouldNotBeNil)
		})
	})
}

func behavioralSession(childID, sessionID string, delta float64) model.ScenarioSession {
	now := time.Now().UTC()
	return model.ScenarioSession{
		SessionID:    sessionID,
		ChildID:      childID,
		ScenarioID:   "sharing-01",
		ScenarioType: model.ScenarioSharing,
		Completed:    true,
		StartedAt:    now.Add(-time.Minute),
		CompletedAt:  now,
		Choices: []model.ScenarioChoice{
			{
				ChoiceID:        "c1",
				SelectedOption:  "share",
				ReactionTimeMS:  1500,
				HesitationCount: 0,
				Expected:        true,
				DimensionDeltas: map[model.EmotionalDimension]float64{
					model.DimEmpathy: delta,
				},
			},
		},
	}
}

func TestBehavioralFlow(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startService(t)
		ctx := context.Background()

		Convey("When a session is recorded", func() {
			report, err := svc.RecordBehavioralSession(ctx, behavioralSession("child-1", "sess-1", 3))
			So(err, ShouldBeNil)

			Convey("Then the outcome counted and the profile was seeded", func() {
				So(report.Outcome.Counted, ShouldBeTrue)
				So(report.Profile.SessionsCompleted, ShouldEqual, 1)
				So(report.Profile.Dimensions[model.DimEmpathy], ShouldAlmostEqual, 80)
				So(report.Profile.Version, ShouldEqual, 1)
			})

			Convey("And replaying the same session is rejected", func() {
				_, err := svc.RecordBehavioralSession(ctx, behavioralSession("child-1", "sess-1", 3))
				So(err, ShouldWrap, repository.ErrDuplicateSession)

				profiles, err := svc.Profiles(ctx, "child-1")
				So(err, ShouldBeNil)
				So(profiles.Emotional.SessionsCompleted, ShouldEqual, 1)
			})

			Convey("And a second session moves the profile", func() {
				report2, err := svc.RecordBehavioralSession(ctx, behavioralSession("child-1", "sess-2", -1))
				So(err, ShouldBeNil)
				So(report2.Profile.SessionsCompleted, ShouldEqual, 2)
				So(report2.Profile.Version, ShouldEqual, 2)
			})
		})

		Convey("When an abandoned session arrives", func() {
			session := behavioralSession("child-2", "sess-9", 2)
			session.Completed = false
			_, err := svc.RecordBehavioralSession(ctx, session)

			Convey("Then it is discarded without touching storage", func() {
				So(err, ShouldNotBeNil)
				_, perr := svc.Profiles(ctx, "child-2")
				So(perr, ShouldWrap, repository.ErrNotFound)
			})
		})
	})
}

func fullFamilyContext(childID string) model.FamilyContext {
	yes := true
	no := false
	screen := 2.0
	books := 120
	return model.FamilyContext{
		ChildID:                childID,
		ZipCode:                "94110",
		HouseholdSize:          4,
		ParentEducationLevel:   "bachelors",
		HouseholdIncomeBracket: "75k_100k",
		SingleParent:           &no,
		LanguagesSpoken:        2,
		ReceivesAssistance:     &yes,
		ChildcareType:          "daycare",
		ScreenTimeHoursDaily:   &screen,
		BooksInHome:            &books,
	}
}

func TestContextAndMosaicFlow(t *testing.T) {
	Convey("Given a service with profile data for a child", t, func() {
		svc := startService(t)
		ctx := context.Background()

		a, first, err := svc.StartAdaptiveTest(ctx, "child-1", model.DomainMath, 36)
		So(err, ShouldBeNil)
		_, err = runToCompletion(ctx, svc, a, first)
		So(err, ShouldBeNil)

		_, err = svc.RecordBehavioralSession(ctx, behavioralSession("child-1", "sess-1", 2))
		So(err, ShouldBeNil)

		Convey("When family context is saved with full consent", func() {
			consent := model.ConsentFlags{SocioEconomic: true, Location: true}
			m, err := svc.SaveFamilyContext(ctx, fullFamilyContext("child-1"), consent)
			So(err, ShouldBeNil)

			Convey("Then the multiplier is stored and at least neutral", func() {
				So(m.AdversityMultiplier, ShouldBeBetweenOrEqual, 1.0, 1.5)
				profiles, err := svc.Profiles(ctx, "child-1")
				So(err, ShouldBeNil)
				So(profiles.Multiplier, ShouldNotBeNil)
			})

			Convey("And a mosaic including context uses it", func() {
				mosaicA, err := svc.GenerateMosaic(ctx, "child-1", true)
				So(err, ShouldBeNil)
				So(mosaicA.Version, ShouldEqual, 1)
				So(mosaicA.AdversityMultiplier, ShouldAlmostEqual, m.AdversityMultiplier)
				So(mosaicA.PrimaryArchetype, ShouldNotBeEmpty)

				Convey("And a second generation bumps the version", func() {
					mosaicB, err := svc.GenerateMosaic(ctx, "child-1", false)
					So(err, ShouldBeNil)
					So(mosaicB.Version, ShouldEqual, 2)
					So(mosaicB.AdversityMultiplier, ShouldAlmostEqual, 1.0)

					history, err := svc.MosaicHistory(ctx, "child-1")
					So(err, ShouldBeNil)
					So(len(history), ShouldEqual, 2)
					So(history[0].Version, ShouldEqual, 2)

					latest, err := svc.LatestMosaic(ctx, "child-1")
					So(err, ShouldBeNil)
					So(latest.Version, ShouldEqual, 2)
				})
			})
		})

		Convey("When context is saved without socio-economic consent", func() {
			m, err := svc.SaveFamilyContext(ctx, fullFamilyContext("child-1"), model.ConsentFlags{})

			Convey("Then a neutral multiplier is stored and consent is reported", func() {
				So(err, ShouldNotBeNil)
				So(m.AdversityMultiplier, ShouldAlmostEqual, 1.0)
			})
		})

		Convey("When context is deleted", func() {
			consent := model.ConsentFlags{SocioEconomic: true, Location: true}
			_, err := svc.SaveFamilyContext(ctx, fullFamilyContext("child-1"), consent)
			So(err, ShouldBeNil)

			So(svc.DeleteFamilyContext(ctx, "child-1"), ShouldBeNil)

			Convey("Then the multiplier is gone too", func() {
				profiles, err := svc.Profiles(ctx, "child-1")
				So(err, ShouldBeNil)
				So(profiles.Multiplier, ShouldBeNil)

				_, err = svc.FamilyContext(ctx, "child-1")
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})
	})

	Convey("Given a child with no profiles", t, func() {
		svc := startService(t)

		Convey("When a mosaic is requested", func() {
			_, err := svc.GenerateMosaic(context.Background(), "ghost", false)

			Convey("Then it is refused", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestRecalcQueue(t *testing.T) {
	Convey("Given a service with an emotional profile", t, func() {
		svc := startService(t)
		ctx := context.Background()

		_, err := svc.RecordBehavioralSession(ctx, behavioralSession("child-1", "sess-1", 2))
		So(err, ShouldBeNil)

		Convey("When a recalculation is enqueued", func() {
			jobID, ok := svc.EnqueueRecalc(ctx, "child-1", false)
			So(ok, ShouldBeTrue)
			So(jobID, ShouldNotBeEmpty)

			Convey("Then a mosaic appears in the background", func() {
				deadline := time.After(2 * time.Second)
				for {
					if _, err := svc.LatestMosaic(ctx, "child-1"); err == nil {
						break
					}
					select {
					case <-deadline:
						t.Fatal("recalculation never produced a mosaic")
					case <-time.After(10 * time.Millisecond):
					}
				}

				latest, err := svc.LatestMosaic(ctx, "child-1")
				So(err, ShouldBeNil)
				So(latest.Version, ShouldEqual, 1)
			})
		})
	})
}

func TestConcurrentMosaicGeneration(t *testing.T) {
	Convey("Given a service with an emotional profile", t, func() {
		svc := startService(t)
		ctx := context.Background()

		_, err := svc.RecordBehavioralSession(ctx, behavioralSession("child-1", "sess-1", 3))
		So(err, ShouldBeNil)

		Convey("When several generations race for the same child", func() {
			const attempts = 8
			results := make([]model.MosaicAssessment, attempts)
			errs := make([]error, attempts)
			var wg sync.WaitGroup
			for i := 0; i < attempts; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					results[i], errs[i] = svc.GenerateMosaic(ctx, "child-1", false)
				}(i)
			}
			wg.Wait()

			Convey("Then persisted versions are distinct and contiguous", func() {
				hist, err := svc.MosaicHistory(ctx, "child-1")
				So(err, ShouldBeNil)
				So(hist, ShouldNotBeEmpty)

				seen := make(map[int]bool, len(hist))
				for _, m := range hist {
					So(seen[m.Version], ShouldBeFalse)
					seen[m.Version] = true
				}
				for i, m := range hist {
					So(m.Version, ShouldEqual, len(hist)-i)
				}
			})

			Convey("And every generation either persisted or reported the conflict", func() {
				succeeded := 0
				for i := 0; i < attempts; i++ {
					if errs[i] == nil {
						So(results[i].Version, ShouldBeGreaterThan, 0)
						succeeded++
					} else {
						So(errs[i], ShouldWrap, repository.ErrVersionConflict)
					}
				}
				hist, err := svc.MosaicHistory(ctx, "child-1")
				So(err, ShouldBeNil)
				So(succeeded, ShouldEqual, len(hist))
			})
		})
	})
}

func TestServiceStats(t *testing.T) {
	Convey("Given a started service with some activity", t, func() {
		svc := startService(t)
		ctx := context.Background()

		_, err := svc.RecordBehavioralSession(ctx, behavioralSession("child-1", "sess-1", 1))
		So(err, ShouldBeNil)

		Convey("When stats are requested", func() {
			stats := svc.GetStats(ctx)

			Convey("Then they reflect the store contents", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["children"], ShouldEqual, 1)
				So(stats["sessions"], ShouldEqual, 1)
			})
		})
	})
}
