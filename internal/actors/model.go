// Package actors serves the actor roster.
package actors

// Actor is a row of the actors table. Attributes are nullable because an
// update replaces every column, including those omitted from the request.
type Actor struct {
	ID     int64   `json:"id"`
	Name   *string `json:"name"`
	Gender *string `json:"gender"`
	Age    *int    `json:"age"`
}
