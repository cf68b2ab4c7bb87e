package request

type UpdateSeatRestrictionRequest struct {
	Restricted *string `json:"restricted" validate:"omitempty,oneof=junior senior officer"`
}
