package actors

// CreateRequest is the POST /actors body. Every field must be present.
type CreateRequest struct {
	Name   *string `json:"name" validate:"required,min=1"`
	Gender *string `json:"gender" validate:"required,min=1"`
	Age    *int    `json:"age" validate:"required,gte=0,lte=2147483647"`
}

// UpdateRequest is the PATCH /actors/{id} body. Omitted fields are stored as null.
type UpdateRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1"`
	Gender *string `json:"gender" validate:"omitempty,min=1"`
	Age    *int    `json:"age" validate:"omitempty,gte=0,lte=2147483647"`
}

func (r CreateRequest) actor() Actor {
	return Actor{Name: r.Name, Gender: r.Gender, Age: r.Age}
}

func (r UpdateRequest) actor(id int64) Actor {
	return Actor{ID: id, Name: r.Name, Gender: r.Gender, Age: r.Age}
}
