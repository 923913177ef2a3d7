package model

import (
	"encoding/json"
	"strconv"
)

// Film is a catalog entry together with its ordered schedule of sessions.
// Films are created by catalog import and are only ever mutated through a
// seat reservation, which adds a seat key to one session's taken set.
//
// Fields:
//
//	ID          – catalog identifier, unique across films.
//	Rating      – rating as shown on the poster (kept as text, e.g. "8.1").
//	Director    – director credit.
//	Tags        – genre tags.
//	Title       – display title.
//	About       – short synopsis.
//	Description – long synopsis.
//	Image       – poster path under the static content prefix.
//	Cover       – cover path under the static content prefix.
//	Schedule    – sessions of this film, in display order.
type Film struct {
	ID          string    `json:"id"`
	Rating      string    `json:"rating"`
	Director    string    `json:"director"`
	Tags        []string  `json:"tags"`
	Title       string    `json:"title"`
	About       string    `json:"about"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Cover       string    `json:"cover"`
	Schedule    []Session `json:"schedule"`
}

// Session is one scheduled showing of a film.  Daytime is an opaque string:
// orders must repeat it verbatim, it is never parsed.
//
// Fields:
//
//	ID      – identifier, unique within the film.
//	Daytime – scheduled date-time as stored.
//	Hall    – hall number.
//	Rows    – number of rows in the hall.
//	Seats   – number of seats per row.
//	Price   – ticket price.
//	Taken   – seat keys already sold for this session.
type Session struct {
	ID      string  `json:"id"`
	Daytime string  `json:"daytime"`
	Hall    int     `json:"hall"`
	Rows    int     `json:"rows"`
	Seats   int     `json:"seats"`
	Price   float64 `json:"price"`
	Taken   Taken   `json:"taken"`
}

// SeatKey builds the "<row>:<seat>" key identifying a seat within a session.
func SeatKey(row, seat int) string {
	return strconv.Itoa(row) + ":" + strconv.Itoa(seat)
}

// FindSession returns a pointer into f.Schedule for the session with the given
// id, or nil when the film has no such session.
func (f *Film) FindSession(id string) *Session {
	for i := range f.Schedule {
		if f.Schedule[i].ID == id {
			return &f.Schedule[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the film so callers can mutate sessions without
// touching the original.
func (f Film) Clone() Film {
	out := f
	out.Tags = append([]string(nil), f.Tags...)
	out.Schedule = make([]Session, len(f.Schedule))
	for i, s := range f.Schedule {
		s.Taken = append(Taken(nil), s.Taken...)
		out.Schedule[i] = s
	}
	return out
}

// MarshalJSON renders nil tags and schedules as empty arrays.
func (f Film) MarshalJSON() ([]byte, error) {
	type film Film
	out := film(f)
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Schedule == nil {
		out.Schedule = []Session{}
	}
	return json.Marshal(out)
}
