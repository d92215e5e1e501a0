package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/muller/cepapp/internal/core/domain"
	"github.com/muller/cepapp/internal/core/ports"
)

// AddressHandler serves the address endpoints. Reads and updates of a single
// address additionally check that the caller owns it or is an admin.
type AddressHandler struct {
	service ports.AddressService
}

func NewAddressHandler(service ports.AddressService) *AddressHandler {
	return &AddressHandler{service: service}
}

// List handles GET /addresses.
//
// @Summary      List all addresses
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listAddressesResponse
// @Failure      403    {object}  errorResponse
// @Router       /addresses [get]
func (h *AddressHandler) List(c echo.Context) error {
	page, err := h.service.ListAddresses(c.Request().Context(), pageQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListAddressesResponse(page))
}

// ListByUser handles GET /users/:id/addresses.
//
// @Summary      List a user's addresses
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int  true   "Owner user id"
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listAddressesResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /users/{id}/addresses [get]
func (h *AddressHandler) ListByUser(c echo.Context) error {
	ownerID, err := pathID(c)
	if err != nil {
		return err
	}
	page, err := h.service.ListUserAddresses(c.Request().Context(), ownerID, pageQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListAddressesResponse(page))
}

// Get handles GET /addresses/:id.
//
// @Summary      Get an address
// @Tags         addresses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Address id"
// @Success      200  {object}  addressResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /addresses/{id} [get]
func (h *AddressHandler) Get(c echo.Context) error {
	addr, err := h.loadOwned(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAddressResponse(addr))
}

// Create handles POST /addresses. The caller becomes the owner.
//
// @Summary      Create an address from a zip code
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addressRequest  true  "Address; only zip_code is used"
// @Success      201   {object}  addressResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /addresses [post]
func (h *AddressHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	addr, err := h.service.CreateAddress(c.Request().Context(), req.toInput(), principal.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toAddressResponse(addr))
}

// Update handles PUT /addresses/:id.
//
// @Summary      Re-resolve an address
// @Tags         addresses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Address id"
// @Param        body  body      addressRequest  true  "Address; only zip_code is used"
// @Success      200   {object}  addressResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /addresses/{id} [put]
func (h *AddressHandler) Update(c echo.Context) error {
	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	existing, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	addr, err := h.service.UpdateAddress(c.Request().Context(), existing.ID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAddressResponse(addr))
}

// Delete handles DELETE /addresses/:id.
//
// @Summary      Delete an address
// @Tags         addresses
// @Security     BearerAuth
// @Param        id   path  int  true  "Address id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /addresses/{id} [delete]
func (h *AddressHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteAddress(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// loadOwned fetches the :id address and applies the owner-or-admin rule.
func (h *AddressHandler) loadOwned(c echo.Context) (*domain.Address, error) {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return nil, err
	}
	id, err := pathID(c)
	if err != nil {
		return nil, err
	}

	addr, err := h.service.GetAddress(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if !domain.CanAccessOwned(principal, addr.OwnerUserID) {
		return nil, domain.ErrForbidden
	}
	return addr, nil
}
