package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/domain/repository"
	"flightlog-service/pkg/auth"
	"flightlog-service/pkg/logger"
)

// --- fakes ---

type fakeAirportRepo struct {
	airports map[string]*entity.Airport
	calls    []string
}

func (f *fakeAirportRepo) GetByIATA(_ context.Context, code string) (*entity.Airport, error) {
	f.calls = append(f.calls, code)
	if airport, ok := f.airports[code]; ok {
		return airport, nil
	}
	return nil, repository.ErrNotFound
}

type fakeAirlineRepo struct {
	airlines map[string]*entity.Airline
	err      error
}

func (f *fakeAirlineRepo) GetByIATA(_ context.Context, code string) (*entity.Airline, error) {
	if f.err != nil {
		return nil, f.err
	}
	if airline, ok := f.airlines[code]; ok {
		return airline, nil
	}
	return nil, repository.ErrNotFound
}

func newTestTransformer(airports *fakeAirportRepo, airlines *fakeAirlineRepo) *ImportTransformer {
	resolver := newTestResolver(testAircraftTable())
	return NewImportTransformer(airports, airlines, resolver, logger.NewNop())
}

func defaultAirports() *fakeAirportRepo {
	return &fakeAirportRepo{airports: map[string]*entity.Airport{
		"FRA": {ID: 1, IATA: "FRA", ICAO: "EDDF", Name: "Frankfurt am Main"},
		"JFK": {ID: 2, IATA: "JFK", ICAO: "KJFK", Name: "John F. Kennedy Intl"},
		"MUC": {ID: 3, IATA: "MUC", ICAO: "EDDM", Name: "Munich"},
	}}
}

func defaultAirlines() *fakeAirlineRepo {
	return &fakeAirlineRepo{airlines: map[string]*entity.Airline{
		"LH": {ID: 1, IATA: "LH", ICAO: "DLH", Name: "Lufthansa"},
	}}
}

func authedCtx() context.Context {
	return auth.WithUser(context.Background(), auth.User{ID: "user-1"})
}

// --- tests ---

func TestTransformRequiresAuthenticatedUser(t *testing.T) {
	tr := newTestTransformer(defaultAirports(), defaultAirlines())

	_, err := tr.Transform(context.Background(), []byte(`[]`))
	assert.ErrorIs(t, err, ErrNoAuthenticatedUser)
}

func TestTransformMalformedJSON(t *testing.T) {
	tr := newTestTransformer(defaultAirports(), defaultAirlines())

	result, err := tr.Transform(authedCtx(), []byte(`{not json`))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrMalformedImport)
}

func TestTransformTypeMismatchSurfacesField(t *testing.T) {
	tr := newTestTransformer(defaultAirports(), defaultAirlines())

	raw := []byte(`[{"Date":"2024-05-01","FlightNumber":"400","StatusMiles":"lots"}]`)
	_, err := tr.Transform(authedCtx(), raw)

	var validationErr *ImportValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Field, "StatusMiles")
}

func TestTransformRejectsEmptySegmentList(t *testing.T) {
	tr := newTestTransformer(defaultAirports(), defaultAirlines())

	_, err := tr.Transform(authedCtx(), []byte(`[]`))
	var validationErr *ImportValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "segments", validationErr.Field)
}

func TestTransformValidatesSegmentFields(t *testing.T) {
	tr := newTestTransformer(defaultAirports(), defaultAirlines())

	_, err := tr.Transform(authedCtx(), []byte(`[{"FlightNumber":"400"}]`))
	var validationErr *ImportValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 0, validationErr.Segment)
	assert.Equal(t, "Date", validationErr.Field)

	_, err = tr.Transform(authedCtx(), []byte(`[{"Date":"01.05.2024","FlightNumber":"400"}]`))
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Date", validationErr.Field)
}

func TestTransformSingleSegment(t *testing.T) {
	tr := newTestTransformer(defaultAirports(), defaultAirlines())

	raw := []byte(`[{
		"Date": "2024-05-01",
		"DepartureTime": "2024-05-01T10:00:00+02:00",
		"ArrivalTime": "2024-05-01T13:30:00-04:00",
		"DepartureAirportCode": "FRA",
		"ArrivalAirportCode": "JFK",
		"AirlineCode": "LH",
		"FlightNumber": "400",
		"CompartmentCode": "C",
		"AircraftCode": "32N",
		"RecordLocator": "ABC123",
		"StatusMiles": 5000,
		"AwardMiles": 2500
	}]`)

	result, err := tr.Transform(authedCtx(), raw)
	require.NoError(t, err)
	require.Len(t, result.Flights, 1)
	assert.Empty(t, result.UnknownAirports)

	flight := result.Flights[0]
	assert.Equal(t, uint(1), flight.OriginID)
	assert.Equal(t, uint(2), flight.DestinationID)
	assert.Equal(t, "LH400", flight.FlightNumber)

	// 10:00+02:00 to 13:30-04:00 is 9.5 hours.
	assert.Equal(t, int64(9*3600+1800), flight.DurationSeconds)

	require.NotNil(t, flight.AirlineICAO)
	assert.Equal(t, "DLH", *flight.AirlineICAO)
	require.NotNil(t, flight.AircraftICAO)
	assert.Equal(t, "A20N", *flight.AircraftICAO)

	require.Len(t, flight.SeatAssignments, 1)
	seat := flight.SeatAssignments[0]
	assert.Equal(t, "user-1", seat.UserID)
	assert.Empty(t, seat.Seat)
	assert.Empty(t, seat.GuestName)
	require.NotNil(t, seat.SeatClass)
	assert.Equal(t, entity.SeatClassBusiness, *seat.SeatClass)

	assert.Equal(t, "PNR: ABC123\nStatus miles: 5000\nAward miles: 2500", flight.Note)
}

func TestTransformDurationPrefersTimeOnPlane(t *testing.T) {
	tr := newTestTransformer(defaultAirports(), defaultAirlines())

	raw := []byte(`[{
		"Date": "2024-05-01",
		"DepartureTime": "2024-05-01T10:00:00Z",
		"ArrivalTime": "2024-05-01T12:00:00Z",
		"DepartureAirportCode": "FRA",
		"ArrivalAirportCode": "MUC",
		"FlightNumber": "100",
		"TimeOnPlane": 0
	}]`)

	result, err := tr.Transform(authedCtx(), raw)
	require.NoError(t, err)
	require.Len(t, result.Flights, 1)
	// Explicit zero wins over the computed two hours.
	assert.Equal(t, int64(0), result.Flights[0].DurationSeconds)
}

func TestTransformArrivalFallsBackToDeparture(t *testing.T) {
	tr := newTestTransformer(defaultAirports(), defaultAirlines())

	raw := []byte(`[{
		"Date": "2024-05-01",
		"DepartureAirportCode": "FRA",
		"ArrivalAirportCode": "MUC",
		"FlightNumber": "100"
	}]`)

	result, err := tr.Transform(authedCtx(), raw)
	require.NoError(t, err)
	require.Len(t, result.Flights, 1)

	flight := result.Flights[0]
	assert.True(t, flight.ArrivalUTC.Equal(flight.DepartureUTC))
	assert.Equal(t, int64(0), flight.DurationSeconds)

	wantDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, flight.Date.Equal(wantDate))
}

func TestTransformUnknownAirportSkipsAndDeduplicates(t *testing.T) {
	airports := defaultAirports()
	tr := newTestTransformer(airports, defaultAirlines())

	raw := []byte(`[
		{"Date":"2024-05-01","DepartureAirportCode":"XXX","ArrivalAirportCode":"JFK","FlightNumber":"1"},
		{"Date":"2024-05-02","DepartureAirportCode":"FRA","ArrivalAirportCode":"MUC","FlightNumber":"2"},
		{"Date":"2024-05-03","DepartureAirportCode":"XXX","ArrivalAirportCode":"YYY","FlightNumber":"3"}
	]`)

	result, err := tr.Transform(authedCtx(), raw)
	require.NoError(t, err)

	require.Len(t, result.Flights, 1)
	assert.Equal(t, "2", result.Flights[0].FlightNumber)
	assert.Equal(t, []string{"XXX", "YYY"}, result.UnknownAirports)
	assert.Equal(t, 2, result.SkippedSegments)
}

func TestTransformLookupsRunInSegmentOrder(t *testing.T) {
	airports := defaultAirports()
	tr := newTestTransformer(airports, defaultAirlines())

	raw := []byte(`[
		{"Date":"2024-05-01","DepartureAirportCode":"FRA","ArrivalAirportCode":"JFK","FlightNumber":"1"},
		{"Date":"2024-05-02","DepartureAirportCode":"JFK","ArrivalAirportCode":"MUC","FlightNumber":"2"}
	]`)

	_, err := tr.Transform(authedCtx(), raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"FRA", "JFK", "JFK", "MUC"}, airports.calls)
}

func TestTransformUnresolvedAirlineAndSeatClass(t *testing.T) {
	tr := newTestTransformer(defaultAirports(), defaultAirlines())

	raw := []byte(`[{
		"Date": "2024-05-01",
		"DepartureAirportCode": "FRA",
		"ArrivalAirportCode": "MUC",
		"AirlineCode": "ZZ",
		"FlightNumber": "9",
		"CompartmentCode": "Q"
	}]`)

	result, err := tr.Transform(authedCtx(), raw)
	require.NoError(t, err)
	require.Len(t, result.Flights, 1)

	flight := result.Flights[0]
	assert.Nil(t, flight.AirlineICAO)
	assert.Nil(t, flight.AircraftICAO)
	assert.Nil(t, flight.SeatAssignments[0].SeatClass)
	assert.Equal(t, "ZZ9", flight.FlightNumber)
}

func TestTransformAirlineLookupErrorIsNonFatal(t *testing.T) {
	airlines := &fakeAirlineRepo{err: errors.New("connection refused")}
	tr := newTestTransformer(defaultAirports(), airlines)

	raw := []byte(`[{
		"Date": "2024-05-01",
		"DepartureAirportCode": "FRA",
		"ArrivalAirportCode": "MUC",
		"AirlineCode": "LH",
		"FlightNumber": "100"
	}]`)

	result, err := tr.Transform(authedCtx(), raw)
	require.NoError(t, err)
	require.Len(t, result.Flights, 1)
	assert.Nil(t, result.Flights[0].AirlineICAO)
}

func TestTransformNoteOmitsZeroCounters(t *testing.T) {
	tr := newTestTransformer(defaultAirports(), defaultAirlines())

	raw := []byte(`[{
		"Date": "2024-05-01",
		"DepartureAirportCode": "FRA",
		"ArrivalAirportCode": "MUC",
		"FlightNumber": "100",
		"StatusPoints": 20,
		"HonPoints": 5
	}]`)

	result, err := tr.Transform(authedCtx(), raw)
	require.NoError(t, err)
	require.Len(t, result.Flights, 1)
	assert.Equal(t, "Status points: 20\nHON Circle points: 5", result.Flights[0].Note)
}
