// Package movies serves the movie catalogue.
package movies

// Movie is a row of the movies table.
type Movie struct {
	ID    int64   `json:"id"`
	Title *string `json:"title"`
	Year  *int    `json:"year"`
}
