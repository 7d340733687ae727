package order

import (
	"context"
	"time"

	"laundrify/config"
	"laundrify/models"
	"laundrify/services/geocode"
	"laundrify/utils"

	"github.com/google/uuid"
)

// DraftState tracks an order draft through the form workflow.
type DraftState string

const (
	StateEmpty           DraftState = "Empty"
	StateAddressPending  DraftState = "AddressPending"
	StateAddressResolved DraftState = "AddressResolved"
	StateGeoValidated    DraftState = "GeoValidated"
	StateSubmittable     DraftState = "Submittable"
	StateSubmitting      DraftState = "Submitting"
	StateSubmitted       DraftState = "Submitted"
	StateFailed          DraftState = "Failed"
)

// Field-level validation messages shown next to the offending input.
const (
	msgPickupDateRequired = "Pickup Date is required"
	msgPickupDateTooSoon  = "Pickup Date must be at least 48 hours from now"
	msgPickupDateTooFar   = "Pickup Date must be within 7 days from now"
	msgPickupTimeRequired = "Pickup Time is required"
	msgAddressRequired    = "Address is required"
	msgNameRequired       = "Order Person Name is required"
	msgPhoneRequired      = "Phone Number is required"
	msgPhoneNotNumeric    = "Phone Number must be a valid number"
	msgPhoneTooShort      = "Phone Number must be at least 10 digits"
)

// MsgSelectValidLocation blocks submission when no geofence-accepted
// coordinates are present. Independent of field validation.
const MsgSelectValidLocation = "Please select a valid location on the map."

// PickupForm carries the user-entered order fields before validation.
type PickupForm struct {
	PickupDate       string `json:"pickupDate"`
	PickupTime       string `json:"pickupTime"` // 24-hour "HH:MM"
	FormattedAddress string `json:"formattedAddress"`
	OrderPersonName  string `json:"orderPersonName"`
	PhoneNumber      string `json:"phoneNumber"`
}

// DraftSession is the serializable draft state cached between form steps.
type DraftSession struct {
	ID          string                     `json:"id"`
	UserID      string                     `json:"userId"`
	State       DraftState                 `json:"state"`
	Cart        models.Cart                `json:"cart"`
	Form        PickupForm                 `json:"form"`
	Suggestions []models.GeocodeSuggestion `json:"suggestions,omitempty"`
	Coordinates *models.GeoPoint           `json:"coordinates,omitempty"`
	FieldErrors map[string]string          `json:"fieldErrors,omitempty"`
	Message     string                     `json:"message,omitempty"`
	OrderID     string                     `json:"orderId,omitempty"`
	CreatedAt   time.Time                  `json:"createdAt"`
}

// NewDraftSession starts an empty draft for the given user's cart snapshot.
func NewDraftSession(userID string, cart models.Cart) *DraftSession {
	return &DraftSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		State:     StateEmpty,
		Cart:      cart,
		CreatedAt: time.Now(),
	}
}

// DraftBuilder drives a DraftSession through address resolution, geofence
// validation, and field validation up to a submittable payload.
type DraftBuilder struct {
	resolver  geocode.Resolver
	geofence  *GeofenceValidator
	minLead   time.Duration
	maxWindow time.Duration
	clock     func() time.Time

	Session *DraftSession
}

// NewDraftBuilder wraps a session with the configured pickup-window policy.
func NewDraftBuilder(resolver geocode.Resolver, geofence *GeofenceValidator, session *DraftSession) *DraftBuilder {
	return &DraftBuilder{
		resolver:  resolver,
		geofence:  geofence,
		minLead:   time.Duration(config.AppConfig.PickupMinLeadHours) * time.Hour,
		maxWindow: time.Duration(config.AppConfig.PickupMaxWindowDays) * 24 * time.Hour,
		clock:     time.Now,
		Session:   session,
	}
}

// WithClock overrides the time source. Used by tests.
func (b *DraftBuilder) WithClock(clock func() time.Time) *DraftBuilder {
	b.clock = clock
	return b
}

// SetAddressInput handles a change of the free-text address field. An empty
// input clears suggestions and any previously resolved coordinates.
func (b *DraftBuilder) SetAddressInput(ctx context.Context, text string) error {
	s := b.Session
	s.Form.FormattedAddress = text

	if text == "" {
		s.Suggestions = nil
		s.Coordinates = nil
		s.State = StateEmpty
		s.Message = ""
		return nil
	}

	s.State = StateAddressPending
	suggestions, err := b.resolver.Search(ctx, s.ID, text)
	if err != nil {
		if err == geocode.ErrStaleResponse {
			return nil
		}
		s.Suggestions = nil
		s.Message = err.Error()
		return err
	}

	s.Suggestions = suggestions
	s.Message = ""
	return nil
}

// SelectSuggestion resolves the chosen display name to authoritative
// coordinates and runs geofence validation. A rejection clears the address
// field and coordinates, per the service-area policy.
func (b *DraftBuilder) SelectSuggestion(ctx context.Context, displayName string) error {
	s := b.Session
	s.Form.FormattedAddress = displayName

	resolved, err := b.resolver.Resolve(ctx, displayName)
	if err != nil {
		s.Message = err.Error()
		return err
	}

	s.State = StateAddressResolved
	s.Suggestions = nil

	if err := b.geofence.Validate(resolved.Latitude, resolved.Longitude); err != nil {
		s.Coordinates = nil
		s.Form.FormattedAddress = ""
		s.State = StateEmpty
		s.Message = err.Error()
		return err
	}

	s.Coordinates = &models.GeoPoint{Latitude: resolved.Latitude, Longitude: resolved.Longitude}
	s.State = StateGeoValidated
	s.Message = ""
	return nil
}

// SetForm stores the pickup fields without touching the resolved address, so
// field edits never reset the geofence outcome.
func (b *DraftBuilder) SetForm(form PickupForm) {
	s := b.Session
	s.Form.PickupDate = form.PickupDate
	s.Form.PickupTime = form.PickupTime
	s.Form.OrderPersonName = form.OrderPersonName
	s.Form.PhoneNumber = form.PhoneNumber
}

// pickupDateLayouts are the accepted encodings of the pickup date input.
var pickupDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parsePickupDate(value string) (time.Time, bool) {
	for _, layout := range pickupDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Validate applies the field rules and the location gate. It returns the
// per-field messages; an empty map means the draft moved to Submittable.
func (b *DraftBuilder) Validate() map[string]string {
	s := b.Session
	now := b.clock()
	errs := make(map[string]string)

	switch {
	case s.Form.PickupDate == "":
		errs["pickupDate"] = msgPickupDateRequired
	default:
		pickup, ok := parsePickupDate(s.Form.PickupDate)
		switch {
		case !ok:
			errs["pickupDate"] = msgPickupDateRequired
		case pickup.Sub(now) < b.minLead:
			errs["pickupDate"] = msgPickupDateTooSoon
		case pickup.Sub(now) > b.maxWindow:
			errs["pickupDate"] = msgPickupDateTooFar
		}
	}

	if s.Form.PickupTime == "" {
		errs["pickupTime"] = msgPickupTimeRequired
	}
	if s.Form.FormattedAddress == "" {
		errs["formattedAddress"] = msgAddressRequired
	}
	if s.Form.OrderPersonName == "" {
		errs["orderPersonName"] = msgNameRequired
	}

	switch {
	case s.Form.PhoneNumber == "":
		errs["phoneNumber"] = msgPhoneRequired
	case !utils.IsDigitsOnly(s.Form.PhoneNumber):
		errs["phoneNumber"] = msgPhoneNotNumeric
	case len(s.Form.PhoneNumber) < 10:
		errs["phoneNumber"] = msgPhoneTooShort
	}

	s.FieldErrors = errs

	// Location gate, separate from field validation. Coordinates are only
	// ever set after geofence acceptance, so presence is the whole check;
	// this also lets a Failed draft become Submittable again after edits.
	if len(errs) == 0 {
		if s.Coordinates == nil {
			s.Message = MsgSelectValidLocation
			return errs
		}
		s.State = StateSubmittable
		s.Message = ""
	}
	return errs
}

// Build assembles the immutable order payload. The pickup time is converted
// to its 12-hour display form here, exactly once.
func (b *DraftBuilder) Build() (*models.OrderDraft, error) {
	s := b.Session

	if errs := b.Validate(); len(errs) > 0 || s.State != StateSubmittable {
		return nil, ErrDraftNotSubmittable
	}

	pickupTime, err := utils.FormatTimeTo12Hour(s.Form.PickupTime)
	if err != nil {
		return nil, err
	}

	services := make([]models.OrderServiceLine, 0, len(s.Cart.Items))
	for _, item := range s.Cart.Items {
		services = append(services, models.OrderServiceLine{
			ServiceRef: item.ServiceRef,
			Items: []models.OrderItem{
				{ItemName: item.ItemName, Quantity: item.Quantity},
			},
		})
	}

	return &models.OrderDraft{
		UserID:           s.UserID,
		Services:         services,
		TotalAmount:      s.Cart.Total(),
		PickupDate:       s.Form.PickupDate,
		PickupTime:       pickupTime,
		FormattedAddress: s.Form.FormattedAddress,
		Latitude:         s.Coordinates.Latitude,
		Longitude:        s.Coordinates.Longitude,
		OrderPersonName:  s.Form.OrderPersonName,
		PhoneNumber:      s.Form.PhoneNumber,
	}, nil
}
