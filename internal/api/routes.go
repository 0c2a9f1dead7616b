package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/satriahrh/inventario/domain/entities"
	"github.com/satriahrh/inventario/internal/websocket"
	"github.com/satriahrh/inventario/usecase"
)

type handlers struct {
	assets *usecase.AssetService
	users  *usecase.UserService
	hub    *websocket.Hub
	logger *zap.Logger
}

// InitRoutes initializes all API routes. hub may be nil, in which case the
// change feed is not served.
func InitRoutes(e *echo.Echo, assets *usecase.AssetService, users *usecase.UserService, hub *websocket.Hub, logger *zap.Logger) {
	h := &handlers{assets: assets, users: users, hub: hub, logger: logger}

	// API v1 routes
	v1 := e.Group("/api/v1")
	v1.GET("/health", h.health)

	// Asset APIs
	v1.GET("/assets", h.listAssets)
	v1.POST("/assets", h.createAsset)
	v1.GET("/assets/summary", h.assetSummary)
	v1.GET("/assets/:id", h.getAsset)
	v1.PATCH("/assets/:id", h.updateAsset)
	v1.POST("/assets/:id/dispose", h.disposeAsset)

	// User APIs
	v1.GET("/users", h.listUsers)
	v1.POST("/users", h.createUser)
	v1.GET("/users/:id", h.getUser)
	v1.PATCH("/users/:id", h.updateUser)
	v1.POST("/users/:id/toggle-active", h.toggleUser)
	v1.DELETE("/users/:id", h.deleteUser)

	if hub != nil {
		e.GET("/ws", func(c echo.Context) error {
			return websocket.HandleWebSocket(hub, c)
		})
	}
}

func (h *handlers) health(c echo.Context) error {
	resp := HealthResponse{Status: "ok", Service: "inventario"}
	if h.hub != nil {
		resp.Subscribers = h.hub.ClientCount()
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *handlers) listAssets(c echo.Context) error {
	filter, err := entities.ParseAssetFilter(c.QueryParam("q"), c.QueryParam("type"), c.QueryParam("disposed"))
	if err != nil {
		return h.fail(c, err)
	}

	dashboard, err := h.assets.Dashboard(c.Request().Context(), filter)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, AssetListResponse{
		Filter: dashboard.Filter,
		Assets: dashboard.Assets,
		Total:  len(dashboard.Assets),
	})
}

func (h *handlers) assetSummary(c echo.Context) error {
	dashboard, err := h.assets.Dashboard(c.Request().Context(), entities.AssetFilter{Type: entities.TypeFilterAll})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, SummaryResponse{
		Counts:                 dashboard.Counts,
		Cards:                  dashboard.Cards,
		NextRegistrationNumber: dashboard.NextRegistrationNumber,
	})
}

func (h *handlers) createAsset(c echo.Context) error {
	var patch entities.AssetPatch
	if err := c.Bind(&patch); err != nil {
		return h.badRequest(c, err)
	}

	asset, err := h.assets.Create(c.Request().Context(), patch)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, asset)
}

func (h *handlers) getAsset(c echo.Context) error {
	asset, err := h.assets.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, asset)
}

func (h *handlers) updateAsset(c echo.Context) error {
	var patch entities.AssetPatch
	if err := c.Bind(&patch); err != nil {
		return h.badRequest(c, err)
	}

	asset, err := h.assets.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, asset)
}

func (h *handlers) disposeAsset(c echo.Context) error {
	asset, err := h.assets.Dispose(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, asset)
}

func (h *handlers) listUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, UserListResponse{Users: users, Total: len(users)})
}

func (h *handlers) createUser(c echo.Context) error {
	var patch entities.UserPatch
	if err := c.Bind(&patch); err != nil {
		return h.badRequest(c, err)
	}

	user, err := h.users.Create(c.Request().Context(), patch)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *handlers) getUser(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *handlers) updateUser(c echo.Context) error {
	var patch entities.UserPatch
	if err := c.Bind(&patch); err != nil {
		return h.badRequest(c, err)
	}

	user, err := h.users.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *handlers) toggleUser(c echo.Context) error {
	user, err := h.users.ToggleActive(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *handlers) deleteUser(c echo.Context) error {
	confirmed, _ := strconv.ParseBool(c.QueryParam("confirm"))

	removed, err := h.users.Remove(c.Request().Context(), c.Param("id"), usecase.Confirmed(confirmed))
	if err != nil {
		return h.fail(c, err)
	}
	if !removed {
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "confirmation_required",
			Message: usecase.DeleteUserPrompt,
		})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) badRequest(c echo.Context, err error) error {
	h.logger.Warn("Failed to bind request", zap.Error(err))
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid_request",
		Message: "Invalid request format",
	})
}

// fail maps domain errors onto HTTP responses
func (h *handlers) fail(c echo.Context, err error) error {
	var validation entities.ValidationErrors
	switch {
	case errors.As(err, &validation):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation_failed",
			Message: "One or more fields are invalid",
			Fields:  validation,
		})
	case errors.Is(err, entities.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	case errors.Is(err, entities.ErrInvalidFilter):
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_filter",
			Message: err.Error(),
		})
	case errors.Is(err, entities.ErrAlreadyExists):
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "already_exists",
			Message: err.Error(),
		})
	default:
		h.logger.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Internal server error",
		})
	}
}
