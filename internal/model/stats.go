package model

// RoomUsage counts bookings for one room.
type RoomUsage struct {
	RoomID   ID     `json:"roomId"`
	Name     string `json:"name"`
	Bookings int    `json:"bookings"`
}

// Stats is the aggregate usage summary.
type Stats struct {
	TotalRooms      int         `json:"totalRooms"`
	ActiveBookings  int         `json:"activeBookings"`
	TotalCapacity   int         `json:"totalCapacity"`
	BusyRooms       int         `json:"busyRooms"`
	OccupancyRate   int         `json:"occupancyRate"`
	BookingsPerRoom []RoomUsage `json:"bookingsPerRoom"`
	Upcoming        []Booking   `json:"upcoming"`
}
