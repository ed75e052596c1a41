package models

// BusTable is the only table the service reads.
const BusTable = "final_bus_details"

// Store column names, as created by the scraper that fills BusTable.
const (
	ColState         = "StateName"
	ColFromPlace     = "From_Place"
	ColToPlace       = "To_Place"
	ColBusName       = "BusName"
	ColBusType       = "BusType"
	ColDepartureTime = "BusDepartureTime"
	ColReachingTime  = "BusReachingTime"
	ColTicketPrice   = "TicketPrice"
	ColRating        = "BusRating"
)

// ResultColumns is the fixed projection and display order of a search.
var ResultColumns = []string{
	ColBusName,
	ColBusType,
	ColDepartureTime,
	ColReachingTime,
	ColTicketPrice,
	ColRating,
}

// BusRecord is one projected search row, rendered as stored.
type BusRecord struct {
	Name          string  `json:"bus_name"`
	Type          string  `json:"bus_type"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	TicketPrice   string  `json:"ticket_price"`
	Rating        float64 `json:"rating"`
}

// BusRow is a full final_bus_details row, route columns included.
type BusRow struct {
	State     string
	FromPlace string
	ToPlace   string
	BusRecord
}
