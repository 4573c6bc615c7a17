package domain

import "time"

type Flight struct {
	ID               string    `json:"id" yaml:"id"`
	Airline          string    `json:"airline" yaml:"airline"`
	FlightNumber     string    `json:"flight_number" yaml:"flight_number"`
	DepartureAirport string    `json:"departure_airport" yaml:"departure_airport"`
	ArrivalAirport   string    `json:"arrival_airport" yaml:"arrival_airport"`
	DepartureTime    time.Time `json:"departure_time" yaml:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time" yaml:"arrival_time"`
	DurationMinutes  int       `json:"duration_minutes" yaml:"duration_minutes"`
	Price            float64   `json:"price" yaml:"price"`
	Stops            int       `json:"stops" yaml:"stops"`
}

// FlightQuery is the flights contract: every returned flight is priced at or
// below BudgetCeiling, ordered by price.
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    time.Time
	BudgetCeiling float64
	Travelers     int
}
