package models

type NearbyStop struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Distance float64 `json:"distance"`
}

type NearbyStopsResponse struct {
	From   Coordinate   `json:"from"`
	Radius float64      `json:"radius"`
	List   []NearbyStop `json:"list"`
}

func NewNearbyStop(id, name string, lat, lon, distance float64) NearbyStop {
	return NearbyStop{
		ID:       id,
		Name:     name,
		Lat:      lat,
		Lon:      lon,
		Distance: distance,
	}
}
