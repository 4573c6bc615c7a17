package inventory

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"smart_travel/internal/domain"
)

// Wire shapes of the remote inventory API. Times are RFC 3339.

type flightsResponse struct {
	Flights []flightDTO `json:"flights"`
}

type flightDTO struct {
	ID               string  `json:"id"`
	Airline          string  `json:"airline"`
	FlightNumber     string  `json:"flight_number"`
	DepartureAirport string  `json:"departure_airport"`
	ArrivalAirport   string  `json:"arrival_airport"`
	DepartureTime    string  `json:"departure_time"`
	ArrivalTime      string  `json:"arrival_time"`
	DurationMinutes  int     `json:"duration_minutes"`
	Price            float64 `json:"price"`
	Stops            int     `json:"stops"`
}

type hotelsResponse struct {
	Hotels []hotelDTO `json:"hotels"`
}

type hotelDTO struct {
	ID            string   `json:"id"`
	Name          string   `json:"hotel_name"`
	Address       string   `json:"address"`
	Rating        float64  `json:"rating"`
	PricePerNight float64  `json:"price_per_night"`
	TotalPrice    float64  `json:"total_price"`
	Amenities     []string `json:"amenities"`
	RoomType      string   `json:"room_type"`
	ImageURL      string   `json:"image_url"`
}

type activitiesResponse struct {
	Activities []activityDTO `json:"activities"`
}

type activityDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"activity_name"`
	Description   string  `json:"description"`
	Location      string  `json:"location"`
	Price         float64 `json:"price"`
	DurationHours float64 `json:"duration_hours"`
	Category      string  `json:"category"`
	Rating        float64 `json:"rating"`
	ImageURL      string  `json:"image_url"`
}

// mapFlights drops rows whose times don't parse; the rest keep wire order.
func mapFlights(in []flightDTO) []domain.Flight {
	out := make([]domain.Flight, 0, len(in))
	for _, d := range in {
		dep, err := time.Parse(time.RFC3339, d.DepartureTime)
		if err != nil {
			log.Warn().Str("id", d.ID).Str("departure_time", d.DepartureTime).Msg("inventory: skipping flight with bad departure time")
			continue
		}
		arr, err := time.Parse(time.RFC3339, d.ArrivalTime)
		if err != nil {
			arr = dep.Add(time.Duration(d.DurationMinutes) * time.Minute)
		}
		dur := d.DurationMinutes
		if dur == 0 {
			dur = int(arr.Sub(dep).Minutes())
		}
		out = append(out, domain.Flight{
			ID:               d.ID,
			Airline:          d.Airline,
			FlightNumber:     d.FlightNumber,
			DepartureAirport: strings.ToUpper(d.DepartureAirport),
			ArrivalAirport:   strings.ToUpper(d.ArrivalAirport),
			DepartureTime:    dep,
			ArrivalTime:      arr,
			DurationMinutes:  dur,
			Price:            d.Price,
			Stops:            d.Stops,
		})
	}
	return out
}

// mapHotels fills a missing total from the nightly rate.
func mapHotels(in []hotelDTO, nights int) []domain.Hotel {
	out := make([]domain.Hotel, 0, len(in))
	for _, d := range in {
		total := d.TotalPrice
		if total == 0 {
			total = d.PricePerNight * float64(nights)
		}
		out = append(out, domain.Hotel{
			ID:            d.ID,
			Name:          d.Name,
			Address:       d.Address,
			Rating:        d.Rating,
			PricePerNight: d.PricePerNight,
			TotalPrice:    total,
			Amenities:     d.Amenities,
			RoomType:      d.RoomType,
			ImageURL:      d.ImageURL,
		})
	}
	return out
}

func mapActivities(in []activityDTO) []domain.Activity {
	out := make([]domain.Activity, 0, len(in))
	for _, d := range in {
		out = append(out, domain.Activity{
			ID:            d.ID,
			Name:          d.Name,
			Description:   d.Description,
			Location:      d.Location,
			Price:         d.Price,
			DurationHours: d.DurationHours,
			Category:      strings.ToLower(strings.TrimSpace(d.Category)),
			Rating:        d.Rating,
			ImageURL:      d.ImageURL,
		})
	}
	return out
}
