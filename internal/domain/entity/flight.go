package entity

import (
	"time"
)

// SeatClass is the internal cabin class of a seat assignment.
type SeatClass string

const (
	SeatClassFirst      SeatClass = "FIRST"
	SeatClassBusiness   SeatClass = "BUSINESS"
	SeatClassEcoPremium SeatClass = "ECO_PREMIUM"
	SeatClassEco        SeatClass = "ECO"
)

// SeatAssignment attributes one seat on a flight to a user or guest.
// Seat and GuestName stay empty for single-passenger imports.
type SeatAssignment struct {
	UserID    string     `bson:"userId"`
	Seat      string     `bson:"seat,omitempty"`
	SeatClass *SeatClass `bson:"seatClass,omitempty"`
	GuestName string     `bson:"guestName,omitempty"`
}

// Flight is one logged flight. AirlineICAO and AircraftICAO are nil when
// the corresponding lookup could not resolve them.
type Flight struct {
	ID              string           `bson:"_id,omitempty"`
	Date            time.Time        `bson:"date"`
	OriginID        uint             `bson:"originId"`
	DestinationID   uint             `bson:"destinationId"`
	DepartureUTC    time.Time        `bson:"departureUtc"`
	ArrivalUTC      time.Time        `bson:"arrivalUtc"`
	DurationSeconds int64            `bson:"durationSeconds"`
	FlightNumber    string           `bson:"flightNumber"`
	AirlineICAO     *string          `bson:"airlineIcao,omitempty"`
	AircraftICAO    *string          `bson:"aircraftIcao,omitempty"`
	Note            string           `bson:"note,omitempty"`
	SeatAssignments []SeatAssignment `bson:"seatAssignments"`
	CreatedAt       time.Time        `bson:"createdAt"`
	UpdatedAt       time.Time        `bson:"updatedAt"`
}
