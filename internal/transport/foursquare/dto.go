package foursquare

// exploreResponse mirrors GET /v2/venues/explore.
type exploreResponse struct {
	Meta     *meta `json:"meta"`
	Response struct {
		Groups []group `json:"groups"`
	} `json:"response"`
}

type meta struct {
	Code        int    `json:"code"`
	ErrorType   string `json:"errorType"`
	ErrorDetail string `json:"errorDetail"`
}

type group struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Items []item `json:"items"`
}

type item struct {
	Venue venue `json:"venue"`
}

type venue struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Categories []category `json:"categories"`
	Location   struct {
		Address string  `json:"address"`
		Lat     float64 `json:"lat"`
		Lng     float64 `json:"lng"`
	} `json:"location"`
	Contact struct {
		FormattedPhone string `json:"formattedPhone"`
	} `json:"contact"`
	Rating *float64 `json:"rating"`
}

type category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
