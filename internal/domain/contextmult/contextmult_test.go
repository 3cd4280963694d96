package contextmult

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/carlosrios100/developmental-assessment-sub000/internal/domain/model"
)

type stubProvider struct {
	index map[string]float64
}

func (p stubProvider) OpportunityIndex(_ context.Context, zip string) (float64, bool, error) {
	if v, ok := p.index[zip]; ok {
		return v, true, nil
	}
	return 0.5, false, nil
}

func boolPtr(b bool) *bool      { return &b }
func intPtr(n int) *int         { return &n }
func f64Ptr(f float64) *float64 { return &f }

// fullContext fills every optional field so completeness never trips
// the floor.
func fullContext(zip, income, education string) model.FamilyContext {
	return model.FamilyContext{
		ChildID:                "child-1",
		ZipCode:                zip,
		HouseholdSize:          4,
		ParentEducationLevel:   education,
		HouseholdIncomeBracket: income,
		SingleParent:           boolPtr(false),
		LanguagesSpoken:        2,
		ReceivesAssistance:     boolPtr(false),
		ChildcareType:          "preschool",
		ScreenTimeHoursDaily:   f64Ptr(1.5),
		BooksInHome:            intPtr(0),
	}
}

func TestCalculate(t *testing.T) {
	ctx := context.Background()
	bothConsents := model.ConsentFlags{SocioEconomic: true, Location: true}

	Convey("Given a calculator over a known opportunity index", t, func() {
		c := New(stubProvider{index: map[string]float64{"94105": 0.9, "73501": 0.3}})

		Convey("When a low-SES family lives in a high-opportunity area", func() {
			fc := fullContext("94105", "under_25k", "high_school")
			m, err := c.Calculate(ctx, fc, bothConsents)

			Convey("Then the positive gap raises the multiplier", func() {
				So(err, ShouldBeNil)
				// SES = (0.1+0.25)/2 = 0.175, gap = 0.9-0.175 = 0.725, capped at 0.5
				So(m.SocioEconStatus, ShouldAlmostEqual, 0.175, 1e-9)
				So(m.GapScore, ShouldAlmostEqual, 0.725, 1e-9)
				So(m.AdversityMultiplier, ShouldAlmostEqual, 1.5, 1e-9)
			})
		})

		Convey("When a high-SES family lives in a low-opportunity area", func() {
			fc := fullContext("73501", "over_200k", "doctorate")
			m, err := c.Calculate(ctx, fc, bothConsents)

			Convey("Then the negative gap never drops the multiplier below neutral", func() {
				So(err, ShouldBeNil)
				So(m.GapScore, ShouldBeLessThan, 0)
				So(m.AdversityMultiplier, ShouldEqual, 1.0)
			})
		})

		Convey("When household adjustments apply", func() {
			fc := fullContext("73501", "50k_75k", "bachelors")
			fc.ReceivesAssistance = boolPtr(true)
			fc.SingleParent = boolPtr(true)
			fc.BooksInHome = intPtr(100)
			m, err := c.Calculate(ctx, fc, bothConsents)

			Convey("Then assistance and single parenthood lower SES and books raise it", func() {
				So(err, ShouldBeNil)
				// base (0.4+0.7)/2 = 0.55, -0.1 -0.05 +0.1 (book bonus capped) = 0.5
				So(m.SocioEconStatus, ShouldAlmostEqual, 0.5, 1e-9)
			})
		})

		Convey("When the zip code is unknown to the provider", func() {
			fc := fullContext("00000", "under_25k", "high_school")
			m, err := c.Calculate(ctx, fc, bothConsents)

			Convey("Then the national estimate still yields a gap", func() {
				So(err, ShouldBeNil)
				So(m.OpportunityIndex, ShouldAlmostEqual, 0.5, 1e-9)
				So(m.AdversityMultiplier, ShouldAlmostEqual, 1.325, 1e-9)
			})
		})

		Convey("When socio-economic consent is missing", func() {
			fc := fullContext("94105", "under_25k", "high_school")
			m, err := c.Calculate(ctx, fc, model.ConsentFlags{Location: true})

			Convey("Then nothing is read and the neutral multiplier is returned", func() {
				So(err, ShouldWrap, ErrConsentRequired)
				So(m.AdversityMultiplier, ShouldEqual, 1.0)
				So(m.SocioEconStatus, ShouldEqual, 0)
			})
		})

		Convey("When location consent is missing", func() {
			fc := fullContext("94105", "under_25k", "high_school")
			m, err := c.Calculate(ctx, fc, model.ConsentFlags{SocioEconomic: true})

			Convey("Then no opportunity gap can be measured and the multiplier stays neutral", func() {
				So(err, ShouldBeNil)
				So(m.OpportunityIndex, ShouldEqual, 0)
				So(m.AdversityMultiplier, ShouldEqual, 1.0)
				So(m.SocioEconStatus, ShouldAlmostEqual, 0.175, 1e-9)
			})
		})

		Convey("When the context is nearly empty", func() {
			fc := model.FamilyContext{
				ChildID:                "child-1",
				ZipCode:                "94105",
				HouseholdIncomeBracket: "under_25k",
			}
			m, err := c.Calculate(ctx, fc, bothConsents)

			Convey("Then completeness below the floor neutralizes the multiplier", func() {
				So(err, ShouldBeNil)
				So(m.DataCompleteness, ShouldAlmostEqual, 0.2, 1e-9)
				So(m.AdversityMultiplier, ShouldEqual, 1.0)
				So(m.GapScore, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When only an unknown income bracket is given", func() {
			fc := fullContext("73501", "prefer_not_say", "")
			m, err := c.Calculate(ctx, fc, bothConsents)

			Convey("Then SES falls back to the neutral middle", func() {
				So(err, ShouldBeNil)
				So(m.SocioEconStatus, ShouldAlmostEqual, 0.5, 1e-9)
			})
		})
	})
}

func TestNeutral(t *testing.T) {
	Convey("Given the neutral multiplier", t, func() {
		m := Neutral("child-1")

		Convey("Then it is exactly 1.0 with zero completeness", func() {
			So(m.AdversityMultiplier, ShouldEqual, 1.0)
			So(m.DataCompleteness, ShouldEqual, 0)
			So(m.ChildID, ShouldEqual, "child-1")
		})
	})
}
