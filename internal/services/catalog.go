package services

import (
	"strings"
	"tripsure/internal/models/request_models"
	"tripsure/pkg/utils"
)

// Question keys. Kept in the original path notation because they are
// persisted in session records as the pending-question marker.
const (
	fieldPolicyType       = "travel/policy_type"
	fieldStartDate        = "_internal/start_date"
	fieldEndDate          = "_internal/end_date"
	fieldCountryCode      = "travel/country_code"
	fieldAdultCount       = "travel/number_of_travellers/adult"
	fieldChildCount       = "travel/number_of_travellers/child"
	fieldPreExAddOn       = "travel/selectedAddOns/preExAddOn/selected"
	fieldLossFFMAddOn     = "travel/selectedAddOns/lossFFMAddOn/selected"
	fieldFlightDelayAddOn = "travel/selectedAddOns/flightDelayAddOn/selected"
	fieldEmail            = "leads/email"
	fieldContactMobile    = "leads/contact_mobile"
	fieldCouponCode       = "promotion/coupon_code"
)

// fieldBinding ties one question to typed accessors on the payload,
// replacing dynamic path traversal with per-field closures.
type fieldBinding struct {
	Key      string
	Prompt   string
	answered func(p *request_models.TravelPayload) bool
	apply    func(p *request_models.TravelPayload, v answerValue) error
}

// questionCatalog is the conversation script. Order is significant and
// must not change: it is the canonical collection sequence.
var questionCatalog = []fieldBinding{
	{
		Key:      fieldPolicyType,
		Prompt:   "To start, what is the policy type? (Enter 'S' for Single Trip or 'A' for Annual)",
		answered: func(p *request_models.TravelPayload) bool { return p.Travel.PolicyType != nil },
		apply: func(p *request_models.TravelPayload, v answerValue) error {
			text, err := v.asText()
			if err != nil {
				return err
			}
			p.Travel.PolicyType = &text
			return nil
		},
	},
	{
		Key:    fieldStartDate,
		Prompt: "What is your travel start date (YYYY-MM-DD)?",
		answered: func(p *request_models.TravelPayload) bool {
			return p.Internal != nil && p.Internal.StartDate != nil
		},
		apply: func(p *request_models.TravelPayload, v answerValue) error {
			if p.Internal == nil {
				return utils.ErrFieldWrite
			}
			text, err := v.asText()
			if err != nil {
				return err
			}
			p.Internal.StartDate = &text
			return nil
		},
	},
	{
		Key:    fieldEndDate,
		Prompt: "And what is your travel end date (YYYY-MM-DD)?",
		answered: func(p *request_models.TravelPayload) bool {
			return p.Internal != nil && p.Internal.EndDate != nil
		},
		apply: func(p *request_models.TravelPayload, v answerValue) error {
			if p.Internal == nil {
				return utils.ErrFieldWrite
			}
			text, err := v.asText()
			if err != nil {
				return err
			}
			p.Internal.EndDate = &text
			return nil
		},
	},
	{
		Key:      fieldCountryCode,
		Prompt:   "What is the 3-letter country code for your destination (e.g., 'MAL')?",
		answered: func(p *request_models.TravelPayload) bool { return len(p.Travel.CountryCode) > 0 },
		apply: func(p *request_models.TravelPayload, v answerValue) error {
			text, err := v.asText()
			if err != nil {
				return err
			}
			p.Travel.CountryCode = []string{strings.ToUpper(text)}
			return nil
		},
	},
	{
		Key:      fieldAdultCount,
		Prompt:   "How many adults are traveling?",
		answered: func(p *request_models.TravelPayload) bool { return len(p.Travel.NumberOfTravellers.Adult) > 0 },
		apply: func(p *request_models.TravelPayload, v answerValue) error {
			n, err := v.asInt()
			if err != nil {
				return err
			}
			p.Travel.NumberOfTravellers.Adult = []int{n}
			recomputeTravellerFields(&p.Travel)
			return nil
		},
	},
	{
		Key:      fieldChildCount,
		Prompt:   "How many children are traveling?",
		answered: func(p *request_models.TravelPayload) bool { return len(p.Travel.NumberOfTravellers.Child) > 0 },
		apply: func(p *request_models.TravelPayload, v answerValue) error {
			n, err := v.asInt()
			if err != nil {
				return err
			}
			p.Travel.NumberOfTravellers.Child = []int{n}
			recomputeTravellerFields(&p.Travel)
			return nil
		},
	},
	{
		Key:      fieldPreExAddOn,
		Prompt:   "Do you require coverage for pre-existing conditions? (true/false)",
		answered: func(p *request_models.TravelPayload) bool { return p.Travel.SelectedAddOns.PreEx.Selected != nil },
		apply: func(p *request_models.TravelPayload, v answerValue) error {
			b, err := v.asBool()
			if err != nil {
				return err
			}
			p.Travel.SelectedAddOns.PreEx.Selected = &b
			return nil
		},
	},
	{
		Key:      fieldLossFFMAddOn,
		Prompt:   "Add coverage for Loss of Frequent Flyer Miles? (true/false)",
		answered: func(p *request_models.TravelPayload) bool { return p.Travel.SelectedAddOns.LossFFM.Selected != nil },
		apply: func(p *request_models.TravelPayload, v answerValue) error {
			b, err := v.asBool()
			if err != nil {
				return err
			}
			p.Travel.SelectedAddOns.LossFFM.Selected = &b
			return nil
		},
	},
	{
		Key:      fieldFlightDelayAddOn,
		Prompt:   "Add the Flight Delay benefit? (true/false)",
		answered: func(p *request_models.TravelPayload) bool { return p.Travel.SelectedAddOns.FlightDelay.Selected != nil },
		apply: func(p *request_models.TravelPayload, v answerValue) error {
			b, err := v.asBool()
			if err != nil {
				return err
			}
			p.Travel.SelectedAddOns.FlightDelay.Selected = &b
			return nil
		},
	},
	{
		Key:      fieldEmail,
		Prompt:   "What is your email address?",
		answered: func(p *request_models.TravelPayload) bool { return p.Leads.Email != nil },
		apply: func(p *request_models.TravelPayload, v answerValue) error {
			text, err := v.asText()
			if err != nil {
				return err
			}
			p.Leads.Email = &text
			return nil
		},
	},
	{
		Key:      fieldContactMobile,
		Prompt:   "What is your 8-digit contact mobile number?",
		answered: func(p *request_models.TravelPayload) bool { return p.Leads.ContactMobile != nil },
		apply: func(p *request_models.TravelPayload, v answerValue) error {
			text, err := v.asText()
			if err != nil {
				return err
			}
			p.Leads.ContactMobile = &text
			return nil
		},
	},
	{
		Key:      fieldCouponCode,
		Prompt:   "Finally, do you have a coupon code? (If not, just say 'no')",
		answered: func(p *request_models.TravelPayload) bool { return p.Promotion.CouponCode != nil },
		apply: func(p *request_models.TravelPayload, v answerValue) error {
			text, err := v.asText()
			if err != nil {
				return err
			}
			p.Promotion.CouponCode = &text
			return nil
		},
	},
}

// nextMissingField returns the first catalog entry the payload has no
// answer for, or nil when the application is complete. Read-only.
func nextMissingField(p *request_models.TravelPayload) *fieldBinding {
	for i := range questionCatalog {
		if !questionCatalog[i].answered(p) {
			return &questionCatalog[i]
		}
	}
	return nil
}

func findBinding(key string) *fieldBinding {
	for i := range questionCatalog {
		if questionCatalog[i].Key == key {
			return &questionCatalog[i]
		}
	}
	return nil
}

// recomputeTravellerFields keeps the aggregate traveller fields in sync
// whenever an adult or child count lands.
func recomputeTravellerFields(t *request_models.TravelDetails) {
	adults, children := 0, 0
	if len(t.NumberOfTravellers.Adult) > 0 {
		adults = t.NumberOfTravellers.Adult[0]
	}
	if len(t.NumberOfTravellers.Child) > 0 {
		children = t.NumberOfTravellers.Child[0]
	}

	total := adults + children
	t.NumberOfTravellers.Total = &total

	withChildren := "no"
	if children > 0 {
		withChildren = "yes"
	}
	t.WithChildren = &withChildren

	withGroupOfAdults := "no"
	if adults > 1 {
		withGroupOfAdults = "yes"
	}
	t.WithGroupOfAdults = &withGroupOfAdults
}
