package order

import (
	"context"
	"testing"
	"time"

	"laundrify/config"
	"laundrify/models"
	"laundrify/services/geocode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockResolver implements geocode.Resolver for testing.
type MockResolver struct {
	suggestions []models.GeocodeSuggestion
	resolved    *models.GeocodeSuggestion
	searchErr   error
	resolveErr  error

	searchCalls  int
	resolveCalls int
	lastScope    string
}

func (m *MockResolver) Search(_ context.Context, scope, query string) ([]models.GeocodeSuggestion, error) {
	m.searchCalls++
	m.lastScope = scope
	return m.suggestions, m.searchErr
}

func (m *MockResolver) Resolve(_ context.Context, displayName string) (*models.GeocodeSuggestion, error) {
	m.resolveCalls++
	return m.resolved, m.resolveErr
}

// shopGeofence matches the configured Bangalore shop location.
func shopGeofence() *GeofenceValidator {
	return &GeofenceValidator{
		ShopLatitude:  12.9715999,
		ShopLongitude: 77.594566,
		RadiusMeters:  30000,
	}
}

func testBuilder(t *testing.T, resolver geocode.Resolver, now time.Time) *DraftBuilder {
	t.Helper()
	config.AppConfig.PickupMinLeadHours = 48
	config.AppConfig.PickupMaxWindowDays = 7

	session := NewDraftSession("user_1", models.Cart{
		UserID: "user_1",
		Items: []models.CartItem{
			{ID: "i1", ItemName: "Shirt", UnitPrice: 50, Quantity: 3, ServiceRef: "svc_wash"},
			{ID: "i2", ItemName: "Trousers", UnitPrice: 60, Quantity: 2, ServiceRef: "svc_iron"},
		},
	})
	return NewDraftBuilder(resolver, shopGeofence(), session).
		WithClock(func() time.Time { return now })
}

func validForm(now time.Time) PickupForm {
	return PickupForm{
		PickupDate:      now.Add(72 * time.Hour).Format("2006-01-02T15:04"),
		PickupTime:      "14:05",
		OrderPersonName: "Asha Rao",
		PhoneNumber:     "9876543210",
	}
}

// selectInsideLocation drives the draft through a geofence-accepted address.
func selectInsideLocation(t *testing.T, b *DraftBuilder, m *MockResolver) {
	t.Helper()
	m.resolved = &models.GeocodeSuggestion{
		DisplayName: "Indiranagar, Bengaluru",
		Latitude:    12.9784,
		Longitude:   77.6408,
	}
	require.NoError(t, b.SelectSuggestion(context.Background(), "Indiranagar, Bengaluru"))
	require.Equal(t, StateGeoValidated, b.Session.State)
}

func TestValidate_PickupWindowBoundaries(t *testing.T) {
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)

	cases := []struct {
		name    string
		pickup  time.Time
		wantErr string
	}{
		{"exactly 48h is allowed", now.Add(48 * time.Hour), ""},
		{"one minute under 48h is too soon", now.Add(48*time.Hour - time.Minute), "Pickup Date must be at least 48 hours from now"},
		{"exactly 7 days is allowed", now.Add(7 * 24 * time.Hour), ""},
		{"past 7 days is too far", now.Add(7*24*time.Hour + time.Hour), "Pickup Date must be within 7 days from now"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := &MockResolver{}
			b := testBuilder(t, resolver, now)
			selectInsideLocation(t, b, resolver)

			form := validForm(now)
			form.PickupDate = tc.pickup.Format("2006-01-02T15:04")
			b.SetForm(form)

			errs := b.Validate()
			if tc.wantErr == "" {
				assert.Empty(t, errs)
				assert.Equal(t, StateSubmittable, b.Session.State)
			} else {
				assert.Equal(t, tc.wantErr, errs["pickupDate"])
			}
		})
	}
}

func TestValidate_PhoneNumber(t *testing.T) {
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)

	cases := []struct {
		name    string
		phone   string
		wantErr string
	}{
		{"empty", "", "Phone Number is required"},
		{"non numeric", "98765abcde", "Phone Number must be a valid number"},
		{"five digits", "12345", "Phone Number must be at least 10 digits"},
		{"ten digits", "1234567890", ""},
		{"eleven digits", "12345678901", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolver := &MockResolver{}
			b := testBuilder(t, resolver, now)
			selectInsideLocation(t, b, resolver)

			form := validForm(now)
			form.PhoneNumber = tc.phone
			b.SetForm(form)

			errs := b.Validate()
			assert.Equal(t, tc.wantErr, errs["phoneNumber"])
		})
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)
	b := testBuilder(t, &MockResolver{}, now)

	errs := b.Validate()
	assert.Equal(t, "Pickup Date is required", errs["pickupDate"])
	assert.Equal(t, "Pickup Time is required", errs["pickupTime"])
	assert.Equal(t, "Address is required", errs["formattedAddress"])
	assert.Equal(t, "Order Person Name is required", errs["orderPersonName"])
	assert.Equal(t, "Phone Number is required", errs["phoneNumber"])
}

func TestValidate_LocationGateSeparateFromFields(t *testing.T) {
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)
	b := testBuilder(t, &MockResolver{}, now)

	// All fields valid, but no geofence-accepted coordinates.
	form := validForm(now)
	form.FormattedAddress = "typed but never selected"
	b.Session.Form.FormattedAddress = form.FormattedAddress
	b.SetForm(form)

	errs := b.Validate()
	assert.Empty(t, errs)
	assert.Equal(t, MsgSelectValidLocation, b.Session.Message)
	assert.NotEqual(t, StateSubmittable, b.Session.State)
}

func TestSetAddressInput_EmptyClearsSuggestionsAndCoordinates(t *testing.T) {
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)
	resolver := &MockResolver{}
	b := testBuilder(t, resolver, now)
	selectInsideLocation(t, b, resolver)

	require.NoError(t, b.SetAddressInput(context.Background(), ""))
	assert.Nil(t, b.Session.Suggestions)
	assert.Nil(t, b.Session.Coordinates)
	assert.Equal(t, StateEmpty, b.Session.State)
	assert.Zero(t, resolver.searchCalls, "empty input must not hit the geocoder")
}

func TestSetAddressInput_SearchesAreScopedToTheDraft(t *testing.T) {
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)
	resolver := &MockResolver{
		suggestions: []models.GeocodeSuggestion{
			{DisplayName: "Indiranagar, Bengaluru", Latitude: 12.9784, Longitude: 77.6408},
		},
	}
	b := testBuilder(t, resolver, now)

	require.NoError(t, b.SetAddressInput(context.Background(), "indiranagar"))
	assert.Equal(t, b.Session.ID, resolver.lastScope,
		"staleness tracking must be keyed by the draft, not shared globally")
}

func TestSelectSuggestion_OutsideServiceAreaClearsAddress(t *testing.T) {
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)
	resolver := &MockResolver{
		// Mysuru, well past the 30 km radius.
		resolved: &models.GeocodeSuggestion{
			DisplayName: "Mysuru, Karnataka",
			Latitude:    12.2958,
			Longitude:   76.6394,
		},
	}
	b := testBuilder(t, resolver, now)

	err := b.SelectSuggestion(context.Background(), "Mysuru, Karnataka")
	require.ErrorIs(t, err, ErrOutsideServiceArea)
	assert.Nil(t, b.Session.Coordinates)
	assert.Empty(t, b.Session.Form.FormattedAddress)
	assert.Equal(t, StateEmpty, b.Session.State)
	assert.Equal(t, "Selected location is outside our service area.", b.Session.Message)
}

func TestSelectSuggestion_ReselectionIsIdempotent(t *testing.T) {
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)
	resolver := &MockResolver{}
	b := testBuilder(t, resolver, now)

	selectInsideLocation(t, b, resolver)
	first := *b.Session.Coordinates

	require.NoError(t, b.SelectSuggestion(context.Background(), "Indiranagar, Bengaluru"))
	assert.Equal(t, first, *b.Session.Coordinates)
	assert.Equal(t, StateGeoValidated, b.Session.State)
	assert.Equal(t, 2, resolver.resolveCalls, "every selection re-resolves")
}

func TestSetForm_DoesNotResetGeofenceOutcome(t *testing.T) {
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)
	resolver := &MockResolver{}
	b := testBuilder(t, resolver, now)
	selectInsideLocation(t, b, resolver)

	b.SetForm(validForm(now))
	assert.Equal(t, StateGeoValidated, b.Session.State)
	assert.NotNil(t, b.Session.Coordinates)
	assert.Equal(t, "Indiranagar, Bengaluru", b.Session.Form.FormattedAddress)
}

func TestBuild_ConvertsPickupTimeAndFlattensCart(t *testing.T) {
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)
	resolver := &MockResolver{}
	b := testBuilder(t, resolver, now)
	selectInsideLocation(t, b, resolver)
	b.SetForm(validForm(now))

	draft, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "2:05 PM", draft.PickupTime)
	assert.Equal(t, "user_1", draft.UserID)
	assert.Equal(t, 270.0, draft.TotalAmount)
	assert.Equal(t, 12.9784, draft.Latitude)
	assert.Equal(t, 77.6408, draft.Longitude)
	require.Len(t, draft.Services, 2)
	assert.Equal(t, "svc_wash", draft.Services[0].ServiceRef)
	assert.Equal(t, []models.OrderItem{{ItemName: "Shirt", Quantity: 3}}, draft.Services[0].Items)
}

func TestBuild_FailsWhenNotSubmittable(t *testing.T) {
	now := time.Date(2025, 1, 10, 10, 0, 0, 0, time.Local)
	b := testBuilder(t, &MockResolver{}, now)

	draft, err := b.Build()
	require.ErrorIs(t, err, ErrDraftNotSubmittable)
	assert.Nil(t, draft)
}
