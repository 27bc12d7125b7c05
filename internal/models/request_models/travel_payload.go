package request_models

// TravelPayload is the quotation request body assembled over the chat
// conversation. Pointer fields and empty slices mean "not collected yet";
// the _internal group carries the trip dates during collection and is
// stripped before the payload is sent to the quotation API.
type TravelPayload struct {
	Internal    *InternalDates    `json:"_internal,omitempty"`
	ProductCode string            `json:"ProductCode"`
	Media       MediaInfo         `json:"media"`
	Travel      TravelDetails     `json:"travel"`
	Promotion   PromotionInfo     `json:"promotion"`
	Leads       LeadsInfo         `json:"leads"`
	CEPParams   map[string]string `json:"CEPParams"`
}

type InternalDates struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type MediaInfo struct {
	WCC string `json:"wcc"`
}

type TravelDetails struct {
	PolicyType            *string        `json:"policy_type"`
	CountryCode           []string       `json:"country_code"`
	NumberOfDays          *int           `json:"number_of_days"`
	Zone                  *string        `json:"zone"`
	WithChildren          *string        `json:"with_children"`
	WithSpouse            string         `json:"with_spouse"`
	WithGroupOfAdults     *string        `json:"with_group_of_adults"`
	WithGroupOfHouseholds string         `json:"with_group_of_households"`
	Plan                  string         `json:"plan"`
	SelectedAddOns        SelectedAddOns `json:"selectedAddOns"`
	NumberOfTravellers    TravellerCount `json:"number_of_travellers"`
}

type SelectedAddOns struct {
	PreEx       AddOn `json:"preExAddOn"`
	LossFFM     AddOn `json:"lossFFMAddOn"`
	FlightDelay AddOn `json:"flightDelayAddOn"`
}

type AddOn struct {
	Selected    *bool `json:"selected"`
	Preselected bool  `json:"preselected"`
}

type TravellerCount struct {
	Total *int  `json:"total"`
	Child []int `json:"child"`
	Adult []int `json:"adult"`
	Group int   `json:"group"`
}

type PromotionInfo struct {
	CouponCode *string `json:"coupon_code"`
}

type LeadsInfo struct {
	Email         *string `json:"email"`
	ContactMobile *string `json:"contact_mobile"`
}

// NewTravelPayload returns a fresh application draft with every
// collectable field unset. Slices and maps are allocated per call so
// drafts never alias each other across sessions.
func NewTravelPayload() *TravelPayload {
	return &TravelPayload{
		Internal:    &InternalDates{},
		ProductCode: "TVP",
		Media:       MediaInfo{WCC: "HLS"},
		Travel: TravelDetails{
			CountryCode:           []string{},
			WithSpouse:            "no",
			WithGroupOfHouseholds: "no",
			Plan:                  "basic",
			NumberOfTravellers: TravellerCount{
				Child: []int{},
				Adult: []int{},
				Group: 1,
			},
		},
		CEPParams: map[string]string{},
	}
}
