package library

// StarRating converts the export's 0-100 stepped rating to the catalog's
// 0-5 star scale. Zero stays zero; any other value rounds up to the next
// full star, capped at five.
func StarRating(raw int) int {
	if raw <= 0 {
		return 0
	}
	stars := (raw + 19) / 20
	if stars > 5 {
		return 5
	}
	return stars
}
