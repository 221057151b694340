// Package nearby embeds the place search widget in a Go program: a query is
// resolved by Google Places text search, the map is centered on the first
// match and the venues around it are listed from the Foursquare explore API.
//
//	client, _ := nearby.New(
//	    nearby.WithGooglePlaces(os.Getenv("GOOGLE_MAPS_API_KEY")),
//	    nearby.WithFoursquare(os.Getenv("FOURSQUARE_CLIENT_ID"), os.Getenv("FOURSQUARE_CLIENT_SECRET")),
//	)
//	defer client.Close()
//
//	v, _ := client.Search(ctx, "Udacity")
//	for _, p := range v.Places {
//	    fmt.Println(p.Name, p.Address)
//	}
//	v, _ = client.SelectPlace(0)
//	fmt.Println(v.Popup.Content)
//
// A failed provider call is not an error: the returned View carries
// StatusError, the same way the widget shows "Error" next to the search box.
package nearby
