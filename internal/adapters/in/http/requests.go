package http

// Request DTOs bound from JSON bodies. Validation tags run through the echo
// Validator before any command is constructed, so malformed requests never
// reach the application layer.

type registerRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=30"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
	Role            string `json:"role" validate:"omitempty,oneof=admin driver"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=72"`
}

type createDeliveryRequest struct {
	ReceiverName string `json:"receiverName" validate:"required"`
	Address      string `json:"address" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Description  string `json:"description"`
	DriverID     string `json:"driverId" validate:"required,uuid"`
}

type decideDeliveryRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

type updateDeliveryStatusRequest struct {
	Status       string `json:"status" validate:"required"`
	FailedReason string `json:"failedReason"`
}
