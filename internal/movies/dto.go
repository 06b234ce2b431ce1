package movies

// CreateRequest is the POST /movies body.
type CreateRequest struct {
	Title *string `json:"title" validate:"required,min=1"`
	Year  *int    `json:"year" validate:"required,gte=0,lte=2147483647"`
}

// UpdateRequest is the PATCH /movies/{id} body. Omitted fields are stored as null.
type UpdateRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1"`
	Year  *int    `json:"year" validate:"omitempty,gte=0,lte=2147483647"`
}

func (r CreateRequest) movie() Movie {
	return Movie{Title: r.Title, Year: r.Year}
}

func (r UpdateRequest) movie(id int64) Movie {
	return Movie{ID: id, Title: r.Title, Year: r.Year}
}
