package request

type CreateDependentRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
	Age  int    `json:"age" validate:"required,min=1,max=120"`
}
