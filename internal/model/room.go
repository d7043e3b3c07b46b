// Package model defines data structures for the room booking service.
package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RoomStatus is the operational state reported for a room.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusBusy        RoomStatus = "busy"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// ID is an identifier that decodes from either a JSON string or a JSON number.
// The upstream room API sends numeric ids.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier as a plain string.
func (id ID) String() string {
	return string(id)
}

// Equipment is a piece of equipment installed in a room.
type Equipment struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Room represents a bookable meeting room.
type Room struct {
	ID          ID          `json:"id"`
	Name        string      `json:"name"`
	Capacity    int         `json:"capacity"`
	Equipment   []Equipment `json:"equipment"`
	Image       string      `json:"image,omitempty"`
	Status      RoomStatus  `json:"status"`
	Location    string      `json:"location,omitempty"`
	Description string      `json:"description,omitempty"`
}

// UnmarshalJSON accepts both "equipment" and "equipments" for the equipment list.
func (r *Room) UnmarshalJSON(data []byte) error {
	type alias Room
	aux := struct {
		*alias
		Equipments []Equipment `json:"equipments"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(r.Equipment) == 0 && len(aux.Equipments) > 0 {
		r.Equipment = aux.Equipments
	}
	return nil
}

// MatchesName reports whether the room name contains query, ignoring case.
func (r *Room) MatchesName(query string) bool {
	return strings.Contains(strings.ToLower(r.Name), strings.ToLower(query))
}

// ListRoomsResponse is the response for listing rooms.
type ListRoomsResponse struct {
	Rooms []Room `json:"rooms"`
	Total int    `json:"total"`
}
