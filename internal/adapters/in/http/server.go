// Package http wires the application use cases to the outside world through
// echo. Handlers stay thin: bind and validate the request, build a command or
// query, delegate, and translate the outcome into the response envelope.
package http

import (
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/account"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	registerAccountHandler      commands.RegisterAccountCommandHandler
	loginHandler                commands.LoginCommandHandler
	forgotPasswordHandler       commands.ForgotPasswordCommandHandler
	resetPasswordHandler        commands.ResetPasswordCommandHandler
	changePasswordHandler       commands.ChangePasswordCommandHandler
	createDeliveryHandler       commands.CreateDeliveryCommandHandler
	decideDeliveryHandler       commands.DecideDeliveryCommandHandler
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler
	removeDriverHandler         commands.RemoveDriverCommandHandler

	// Query handlers
	getDeliveriesHandler queries.GetDeliveriesQueryHandler
	getDeliveryHandler   queries.GetDeliveryQueryHandler
	getDriversHandler    queries.GetDriversQueryHandler
	getDriverHandler     queries.GetDriverQueryHandler
	getProfileHandler    queries.GetProfileQueryHandler

	authGate *AuthGate
}

// NewServer creates the HTTP server with the required handlers and middleware.
func NewServer(
	registerAccountHandler commands.RegisterAccountCommandHandler,
	loginHandler commands.LoginCommandHandler,
	forgotPasswordHandler commands.ForgotPasswordCommandHandler,
	resetPasswordHandler commands.ResetPasswordCommandHandler,
	changePasswordHandler commands.ChangePasswordCommandHandler,
	createDeliveryHandler commands.CreateDeliveryCommandHandler,
	decideDeliveryHandler commands.DecideDeliveryCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	removeDriverHandler commands.RemoveDriverCommandHandler,
	getDeliveriesHandler queries.GetDeliveriesQueryHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	getDriversHandler queries.GetDriversQueryHandler,
	getDriverHandler queries.GetDriverQueryHandler,
	getProfileHandler queries.GetProfileQueryHandler,
	authGate *AuthGate,
) *Server {
	return &Server{
		registerAccountHandler:      registerAccountHandler,
		loginHandler:                loginHandler,
		forgotPasswordHandler:       forgotPasswordHandler,
		resetPasswordHandler:        resetPasswordHandler,
		changePasswordHandler:       changePasswordHandler,
		createDeliveryHandler:       createDeliveryHandler,
		decideDeliveryHandler:       decideDeliveryHandler,
		updateDeliveryStatusHandler: updateDeliveryStatusHandler,
		removeDriverHandler:         removeDriverHandler,
		getDeliveriesHandler:        getDeliveriesHandler,
		getDeliveryHandler:          getDeliveryHandler,
		getDriversHandler:           getDriversHandler,
		getDriverHandler:            getDriverHandler,
		getProfileHandler:           getProfileHandler,
		authGate:                    authGate,
	}
}

// RegisterRoutes attaches all routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", s.Health)

	auth := e.Group("/auth")
	auth.POST("/register", s.Register)
	auth.POST("/login", s.Login)
	auth.POST("/forgot-password", s.ForgotPassword)
	auth.POST("/reset-password/:token", s.ResetPassword)
	auth.POST("/change-password", s.ChangePassword, s.authGate.Middleware())

	admin := e.Group("/admin", s.authGate.Middleware())
	admin.POST("/create-delivery", s.CreateDelivery)
	admin.GET("/orders", s.GetDeliveries)
	admin.GET("/driver", s.GetDrivers)
	admin.GET("/driver/:id", s.GetDriver)
	admin.DELETE("/driver/:id", s.RemoveDriver)

	driver := e.Group("/driver", s.authGate.Middleware())
	driver.GET("/profile", s.GetProfile)
	driver.GET("/deliveries/:id", s.GetDelivery)
	driver.PATCH("/deliveries/:id/accept-reject", s.DecideDelivery)
	driver.PATCH("/deliveries/:id/status", s.UpdateDeliveryStatus)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return respondSuccess(c, http.StatusOK, "ok", nil)
}

// Register handles POST /auth/register.
func (s *Server) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewRegisterAccountCommand(
		req.Username, req.Email, req.Password, req.ConfirmPassword, req.Role,
	)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.registerAccountHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, http.StatusCreated, "account registered", authData(result.Account, result.Token))
}

// Login handles POST /auth/login.
func (s *Server) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewLoginCommand(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.loginHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, http.StatusOK, "logged in", authData(result.Account, result.Token))
}

// ForgotPassword handles POST /auth/forgot-password.
func (s *Server) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewForgotPasswordCommand(req.Email)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.forgotPasswordHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, http.StatusOK, "password reset email sent", nil)
}

// ResetPassword handles POST /auth/reset-password/:token.
func (s *Server) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewResetPasswordCommand(c.Param("token"), req.Password)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.resetPasswordHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, http.StatusOK, "password reset", authData(result.Account, result.Token))
}

// ChangePassword handles POST /auth/change-password.
func (s *Server) ChangePassword(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	var req changePasswordRequest
	if err = bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewChangePasswordCommand(caller.ID(), req.CurrentPassword, req.NewPassword)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.changePasswordHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, http.StatusOK, "password changed", nil)
}

// CreateDelivery handles POST /admin/create-delivery.
func (s *Server) CreateDelivery(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	var req createDeliveryRequest
	if err = bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("driverId", err))
	}

	cmd, err := commands.NewCreateDeliveryCommand(
		caller, req.ReceiverName, req.Address, req.Phone, req.Description, driverID,
	)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.createDeliveryHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, http.StatusCreated, "delivery created", deliveryData(result.Delivery))
}

// GetDeliveries handles GET /admin/orders.
func (s *Server) GetDeliveries(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetDeliveriesQuery(caller, c.QueryParam("status"))
	if err != nil {
		return respondError(c, err)
	}

	deliveries, err := s.getDeliveriesHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	data := make([]deliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		data = append(data, deliveryListItem(d))
	}

	return respondSuccess(c, http.StatusOK, "deliveries retrieved", data)
}

// GetDrivers handles GET /admin/driver.
func (s *Server) GetDrivers(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetDriversQuery(caller)
	if err != nil {
		return respondError(c, err)
	}

	drivers, err := s.getDriversHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	data := make([]driverResponse, 0, len(drivers))
	for _, d := range drivers {
		data = append(data, driverData(d))
	}

	return respondSuccess(c, http.StatusOK, "drivers retrieved", data)
}

// GetDriver handles GET /admin/driver/:id.
func (s *Server) GetDriver(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	driverID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetDriverQuery(caller, driverID)
	if err != nil {
		return respondError(c, err)
	}

	driver, err := s.getDriverHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, http.StatusOK, "driver retrieved", singleDriverData(driver))
}

// RemoveDriver handles DELETE /admin/driver/:id.
func (s *Server) RemoveDriver(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	driverID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewRemoveDriverCommand(caller, driverID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.removeDriverHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, http.StatusOK, "driver removed", nil)
}

// GetProfile handles GET /driver/profile.
func (s *Server) GetProfile(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetProfileQuery(caller.ID())
	if err != nil {
		return respondError(c, err)
	}

	profile, err := s.getProfileHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, http.StatusOK, "profile retrieved", profileData(profile))
}

// GetDelivery handles GET /driver/deliveries/:id.
func (s *Server) GetDelivery(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	deliveryID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetDeliveryQuery(caller, deliveryID)
	if err != nil {
		return respondError(c, err)
	}

	result, err := s.getDeliveryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, http.StatusOK, "delivery retrieved", deliverySingleItem(result))
}

// DecideDelivery handles PATCH /driver/deliveries/:id/accept-reject.
func (s *Server) DecideDelivery(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	deliveryID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req decideDeliveryRequest
	if err = bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	action, err := delivery.ActionFromString(req.Action)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewDecideDeliveryCommand(caller, deliveryID, action)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.decideDeliveryHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, http.StatusOK, "delivery "+req.Action+"ed", nil)
}

// UpdateDeliveryStatus handles PATCH /driver/deliveries/:id/status.
func (s *Server) UpdateDeliveryStatus(c echo.Context) error {
	caller, err := callerFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	deliveryID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req updateDeliveryStatusRequest
	if err = bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	status, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(caller, deliveryID, status, req.FailedReason)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.updateDeliveryStatusHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, http.StatusOK, "delivery status updated", nil)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return c.Validate(req)
}

// Response DTOs keep the wire shape independent of domain and read model types.

type accountResponse struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

type authResponse struct {
	Account accountResponse `json:"account"`
	Token   string          `json:"token"`
}

type deliveryResponse struct {
	ID           string     `json:"id"`
	ReceiverName string     `json:"receiverName"`
	Address      string     `json:"address"`
	Phone        string     `json:"phone"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	FailedReason *string    `json:"failedReason,omitempty"`
	DriverID     *string    `json:"driverId,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

type driverDeliveryItem struct {
	ID           string    `json:"id"`
	ReceiverName string    `json:"receiverName"`
	Address      string    `json:"address"`
	Status       string    `json:"status"`
	FailedReason *string   `json:"failedReason,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type driverResponse struct {
	ID         string               `json:"id"`
	Username   string               `json:"username"`
	Email      string               `json:"email"`
	Role       string               `json:"role"`
	IsActive   bool                 `json:"isActive"`
	LastLogin  *time.Time           `json:"lastLogin,omitempty"`
	Deliveries []driverDeliveryItem `json:"deliveries"`
}

func authData(acc *account.Account, token string) authResponse {
	return authResponse{
		Account: accountResponse{
			ID:        acc.ID().String(),
			Username:  acc.Username(),
			Email:     acc.Email(),
			Role:      acc.Role().String(),
			IsActive:  acc.IsActive(),
			LastLogin: acc.LastLogin(),
		},
		Token: token,
	}
}

func profileData(profile queries.GetProfileQueryResponse) accountResponse {
	return accountResponse{
		ID:        profile.ID.String(),
		Username:  profile.Username,
		Email:     profile.Email,
		Role:      profile.Role.String(),
		IsActive:  profile.IsActive,
		LastLogin: profile.LastLogin,
	}
}

func deliveryData(d *delivery.Delivery) deliveryResponse {
	response := deliveryResponse{
		ID:           d.ID().String(),
		ReceiverName: d.ReceiverName(),
		Address:      d.Address(),
		Phone:        d.Phone(),
		Description:  d.Description(),
		Status:       d.Status().String(),
		FailedReason: d.FailedReason(),
	}
	if id := d.DriverID(); id != nil {
		s := id.String()
		response.DriverID = &s
	}
	return response
}

func deliveryListItem(d queries.GetDeliveriesQueryResponse) deliveryResponse {
	response := deliveryResponse{
		ID:           d.ID.String(),
		ReceiverName: d.ReceiverName,
		Address:      d.Address,
		Phone:        d.Phone,
		Description:  d.Description,
		Status:       d.Status.String(),
		FailedReason: d.FailedReason,
		CreatedAt:    &d.CreatedAt,
	}
	if d.DriverID != nil {
		s := d.DriverID.String()
		response.DriverID = &s
	}
	return response
}

func deliverySingleItem(d queries.GetDeliveryQueryResponse) deliveryResponse {
	response := deliveryResponse{
		ID:           d.ID.String(),
		ReceiverName: d.ReceiverName,
		Address:      d.Address,
		Phone:        d.Phone,
		Description:  d.Description,
		Status:       d.Status.String(),
		FailedReason: d.FailedReason,
		CreatedAt:    &d.CreatedAt,
	}
	if d.DriverID != nil {
		s := d.DriverID.String()
		response.DriverID = &s
	}
	return response
}

func singleDriverData(d queries.GetDriverQueryResponse) driverResponse {
	return driverData(queries.GetDriversQueryResponse(d))
}

func driverData(d queries.GetDriversQueryResponse) driverResponse {
	deliveries := make([]driverDeliveryItem, 0, len(d.Deliveries))
	for _, item := range d.Deliveries {
		deliveries = append(deliveries, driverDeliveryItem{
			ID:           item.ID.String(),
			ReceiverName: item.ReceiverName,
			Address:      item.Address,
			Status:       item.Status.String(),
			FailedReason: item.FailedReason,
			CreatedAt:    item.CreatedAt,
		})
	}

	return driverResponse{
		ID:         d.ID.String(),
		Username:   d.Username,
		Email:      d.Email,
		Role:       d.Role.String(),
		IsActive:   d.IsActive,
		LastLogin:  d.LastLogin,
		Deliveries: deliveries,
	}
}
