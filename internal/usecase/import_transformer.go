package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/domain/repository"
	"flightlog-service/pkg/auth"
	"flightlog-service/pkg/logger"
)

// Fatal import errors. Per-segment resolution misses are never fatal; they
// surface through ImportResult.UnknownAirports instead.
var (
	ErrNoAuthenticatedUser = errors.New("no authenticated user in context")
	ErrMalformedImport     = errors.New("malformed import payload")
)

// ImportValidationError reports a shape violation in the import payload.
// Segment is -1 when the violation concerns the document as a whole.
type ImportValidationError struct {
	Segment int
	Field   string
	Reason  string
}

func (e *ImportValidationError) Error() string {
	if e.Segment < 0 {
		return fmt.Sprintf("import validation: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("import validation: segment %d: %s: %s", e.Segment, e.Field, e.Reason)
}

const (
	importDateLayout = "2006-01-02"
)

// milesAndMoreSegment mirrors one record of the Miles & More JSON export.
// Field names are capitalized in the export; several fields come either as
// a plain date or as an offset datetime.
type milesAndMoreSegment struct {
	Date                 string `json:"Date"`
	DepartureTime        string `json:"DepartureTime,omitempty"`
	ArrivalTime          string `json:"ArrivalTime,omitempty"`
	DepartureAirportCode string `json:"DepartureAirportCode"`
	DepartureAirportName string `json:"DepartureAirportName,omitempty"`
	ArrivalAirportCode   string `json:"ArrivalAirportCode"`
	ArrivalAirportName   string `json:"ArrivalAirportName,omitempty"`
	AirlineCode          string `json:"AirlineCode,omitempty"`
	FlightNumber         string `json:"FlightNumber"`
	CompartmentCode      string `json:"CompartmentCode,omitempty"`
	AircraftCode         string `json:"AircraftCode,omitempty"`
	TimeOnPlane          *int64 `json:"TimeOnPlane,omitempty"` // seconds; present zero is meaningful
	RecordLocator        string `json:"RecordLocator,omitempty"`
	StatusMiles          int64  `json:"StatusMiles,omitempty"`
	AwardMiles           int64  `json:"AwardMiles,omitempty"`
	HonMiles             int64  `json:"HonMiles,omitempty"`
	StatusPoints         int64  `json:"StatusPoints,omitempty"`
	QualifyingPoints     int64  `json:"QualifyingPoints,omitempty"`
	HonPoints            int64  `json:"HonPoints,omitempty"`
}

// compartmentClasses maps the export's one-letter cabin codes to internal
// seat classes. Unmapped codes yield no seat class.
var compartmentClasses = map[string]entity.SeatClass{
	"F": entity.SeatClassFirst,
	"C": entity.SeatClassBusiness,
	"E": entity.SeatClassEcoPremium,
	"M": entity.SeatClassEco,
}

// ImportResult is the outcome of one import run. Segments whose airports
// could not be resolved are excluded from Flights; their raw codes appear
// once each in UnknownAirports, in first-seen order, so the caller can
// prompt for manual resolution.
type ImportResult struct {
	Flights         []*entity.Flight
	UnknownAirports []string
	SkippedSegments int
}

// ImportTransformer converts a Miles & More JSON export into internal
// flight records, resolving airports and airlines through the reference
// repositories and aircraft through the AircraftResolver.
type ImportTransformer struct {
	airportRepo repository.AirportRepository
	airlineRepo repository.AirlineRepository
	resolver    *AircraftResolver
	logger      logger.Logger
}

// NewImportTransformer creates a new import transformer.
func NewImportTransformer(
	airportRepo repository.AirportRepository,
	airlineRepo repository.AirlineRepository,
	resolver *AircraftResolver,
	log logger.Logger,
) *ImportTransformer {
	return &ImportTransformer{
		airportRepo: airportRepo,
		airlineRepo: airlineRepo,
		resolver:    resolver,
		logger:      log,
	}
}

// Transform parses and converts one export document on behalf of the
// authenticated user carried by ctx. Parse and shape failures abort the
// whole run; unresolved airports only exclude their segment.
func (t *ImportTransformer) Transform(ctx context.Context, raw []byte) (*ImportResult, error) {
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, ErrNoAuthenticatedUser
	}

	var segments []milesAndMoreSegment
	if err := json.Unmarshal(raw, &segments); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ImportValidationError{
				Segment: -1,
				Field:   typeErr.Field,
				Reason:  fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}

	if len(segments) == 0 {
		return nil, &ImportValidationError{
			Segment: -1,
			Field:   "segments",
			Reason:  "at least one segment is required",
		}
	}
	for i := range segments {
		if err := validateSegment(i, &segments[i]); err != nil {
			return nil, err
		}
	}

	result := &ImportResult{}
	seenUnknown := make(map[string]bool)
	for i := range segments {
		t.transformSegment(ctx, user.ID, i, &segments[i], result, seenUnknown)
	}

	t.logger.Info("import transformed",
		"segments", len(segments),
		"flights", len(result.Flights),
		"unknownAirports", len(result.UnknownAirports))
	return result, nil
}

func validateSegment(index int, seg *milesAndMoreSegment) error {
	if seg.Date == "" {
		return &ImportValidationError{Segment: index, Field: "Date", Reason: "required"}
	}
	if _, err := time.Parse(importDateLayout, seg.Date); err != nil {
		return &ImportValidationError{Segment: index, Field: "Date",
			Reason: fmt.Sprintf("not a valid date: %q", seg.Date)}
	}
	if seg.DepartureTime != "" {
		if _, err := time.Parse(time.RFC3339, seg.DepartureTime); err != nil {
			return &ImportValidationError{Segment: index, Field: "DepartureTime",
				Reason: fmt.Sprintf("not a valid datetime: %q", seg.DepartureTime)}
		}
	}
	if seg.ArrivalTime != "" {
		if _, err := time.Parse(time.RFC3339, seg.ArrivalTime); err != nil {
			return &ImportValidationError{Segment: index, Field: "ArrivalTime",
				Reason: fmt.Sprintf("not a valid datetime: %q", seg.ArrivalTime)}
		}
	}
	if strings.TrimSpace(seg.FlightNumber) == "" {
		return &ImportValidationError{Segment: index, Field: "FlightNumber", Reason: "required"}
	}
	return nil
}

// transformSegment converts one segment, appending to result. Airport
// lookups run sequentially, origin before destination, so segments come
// out in input order.
func (t *ImportTransformer) transformSegment(
	ctx context.Context,
	userID string,
	index int,
	seg *milesAndMoreSegment,
	result *ImportResult,
	seenUnknown map[string]bool,
) {
	originCode := strings.TrimSpace(seg.DepartureAirportCode)
	destinationCode := strings.TrimSpace(seg.ArrivalAirportCode)

	origin := t.lookupAirport(ctx, originCode)
	destination := t.lookupAirport(ctx, destinationCode)
	if origin == nil || destination == nil {
		if origin == nil {
			t.recordUnknownAirport(result, seenUnknown, originCode)
		}
		if destination == nil {
			t.recordUnknownAirport(result, seenUnknown, destinationCode)
		}
		result.SkippedSegments++
		t.logger.Warn("segment skipped, airport unresolved",
			"segment", index, "origin", originCode, "destination", destinationCode)
		return
	}

	date, _ := time.Parse(importDateLayout, seg.Date)

	departure := date
	if seg.DepartureTime != "" {
		departure, _ = time.Parse(time.RFC3339, seg.DepartureTime)
	}
	// No arrival information means a same-instant arrival. Understates
	// duration for overnight segments that also lack TimeOnPlane; kept as
	// the product behaves today.
	arrival := departure
	if seg.ArrivalTime != "" {
		arrival, _ = time.Parse(time.RFC3339, seg.ArrivalTime)
	}

	duration := int64(arrival.Sub(departure) / time.Second)
	if seg.TimeOnPlane != nil {
		duration = *seg.TimeOnPlane
	}

	designator := strings.TrimSpace(seg.AirlineCode)
	var airlineICAO *string
	if designator != "" {
		if airline, err := t.airlineRepo.GetByIATA(ctx, designator); err == nil && airline != nil && airline.ICAO != "" {
			icao := airline.ICAO
			airlineICAO = &icao
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			t.logger.Warn("airline lookup failed", "designator", designator, "error", err)
		}
	}

	var seatClass *entity.SeatClass
	if class, ok := compartmentClasses[strings.TrimSpace(seg.CompartmentCode)]; ok {
		seatClass = &class
	}

	var aircraftICAO *string
	if aircraft := t.resolver.ResolveLoyaltyCode(seg.AircraftCode); aircraft != nil {
		icao := aircraft.ICAO
		aircraftICAO = &icao
	}

	result.Flights = append(result.Flights, &entity.Flight{
		Date:            date,
		OriginID:        origin.ID,
		DestinationID:   destination.ID,
		DepartureUTC:    departure.UTC(),
		ArrivalUTC:      arrival.UTC(),
		DurationSeconds: duration,
		FlightNumber:    designator + strings.TrimSpace(seg.FlightNumber),
		AirlineICAO:     airlineICAO,
		AircraftICAO:    aircraftICAO,
		Note:            buildImportNote(seg),
		SeatAssignments: []entity.SeatAssignment{
			{UserID: userID, SeatClass: seatClass},
		},
	})
}

// lookupAirport resolves one IATA code. Any failure, including an empty
// code, counts as a normal unknown outcome, not an error.
func (t *ImportTransformer) lookupAirport(ctx context.Context, code string) *entity.Airport {
	if code == "" {
		return nil
	}
	airport, err := t.airportRepo.GetByIATA(ctx, code)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			t.logger.Warn("airport lookup failed", "code", code, "error", err)
		}
		return nil
	}
	return airport
}

func (t *ImportTransformer) recordUnknownAirport(result *ImportResult, seen map[string]bool, code string) {
	if code == "" || seen[code] {
		return
	}
	seen[code] = true
	result.UnknownAirports = append(result.UnknownAirports, code)
}

// buildImportNote joins the labeled, non-zero mileage and point counters of
// a segment, one per line, in a fixed order.
func buildImportNote(seg *milesAndMoreSegment) string {
	var lines []string
	if seg.RecordLocator != "" {
		lines = append(lines, "PNR: "+seg.RecordLocator)
	}
	counters := []struct {
		label string
		value int64
	}{
		{"Status miles", seg.StatusMiles},
		{"Award miles", seg.AwardMiles},
		{"HON Circle miles", seg.HonMiles},
		{"Status points", seg.StatusPoints},
		{"Qualifying points", seg.QualifyingPoints},
		{"HON Circle points", seg.HonPoints},
	}
	for _, counter := range counters {
		if counter.value != 0 {
			lines = append(lines, fmt.Sprintf("%s: %d", counter.label, counter.value))
		}
	}
	return strings.Join(lines, "\n")
}
