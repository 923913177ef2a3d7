package model

// OrderLine is one reserved seat as returned to the client and carried in the
// order.created event.  ID repeats the session id.
type OrderLine struct {
	ID      string  `json:"id"`
	Film    string  `json:"film"`
	Session string  `json:"session"`
	Daytime string  `json:"daytime"`
	Row     int     `json:"row"`
	Seat    int     `json:"seat"`
	Price   float64 `json:"price"`
}
