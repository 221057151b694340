package nearby

import (
	"github.com/kailas-cloud/nearby/internal/domain"
	viewuc "github.com/kailas-cloud/nearby/internal/usecase/view"
)

func viewFromSnapshot(s viewuc.Snapshot) View {
	v := View{
		Query:      s.Query,
		Status:     Status(s.Status),
		StatusText: s.StatusText(),
		Center:     coordinateFromDomain(s.Center),
		Zoom:       s.Zoom,
		Places:     make([]Place, len(s.Places)),
	}
	if s.CenterMark != nil {
		v.Place = &CenterPlace{
			Name:     s.CenterMark.Place.Name,
			Address:  s.CenterMark.Place.Address,
			Location: coordinateFromDomain(s.CenterMark.Place.Location),
			MarkerID: uint64(s.CenterMark.Marker.ID),
		}
	}
	for i, e := range s.Places {
		v.Places[i] = placeFromEntry(i, e)
	}
	if s.Popup != nil {
		v.Popup = &Popup{Content: s.Popup.Content, MarkerID: uint64(s.Popup.Anchor)}
	}
	return v
}

func placeFromEntry(i int, e viewuc.PlaceEntry) Place {
	p := Place{
		Index:          i,
		Name:           e.Place.Name,
		Category:       e.Place.Category,
		Address:        e.Place.Address,
		Phone:          e.Place.Phone,
		Location:       coordinateFromDomain(e.Place.Location),
		DistanceMeters: e.Place.DistanceMeters,
		MarkerID:       uint64(e.Marker.ID),
	}
	if r, ok := e.Place.Rating.Value(); ok {
		p.Rating = &r
	}
	return p
}

func coordinateFromDomain(c domain.Coordinate) Coordinate {
	return Coordinate{Lat: c.Lat, Lng: c.Lng}
}
