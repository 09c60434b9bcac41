package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/foundit/foundit-api/internal/domain"
	"github.com/foundit/foundit-api/internal/service"
	"github.com/foundit/foundit-api/internal/util"
)

type ItemHandler struct {
	items *service.ItemService
}

// RegisterItems mounts the item routes. Reads are public so anyone can browse
// the registry; writes require a logged-in account.
func RegisterItems(e *echo.Echo, auth *service.AuthService, items *service.ItemService) {
	handler := &ItemHandler{items: items}

	group := e.Group("/api/v1/items")
	group.GET("", handler.list)
	group.GET("/stats", handler.stats)
	group.GET("/:id", handler.get)

	requireAuth := RequireAuth(auth)
	group.POST("", handler.create, requireAuth)
	group.PUT("/:id", handler.update, requireAuth)
	group.DELETE("/:id", handler.delete, requireAuth)
}

func (h *ItemHandler) list(c echo.Context) error {
	filter := domain.ItemListFilter{
		Search: c.QueryParam("q"),
		Places: c.QueryParams()["place"],
	}
	limit := parseIntParam(c.QueryParam("limit"), 0)
	offset := parseIntParam(c.QueryParam("offset"), 0)

	items, err := h.items.List(c.Request().Context(), filter, limit, offset)
	if err != nil {
		return writeItemError(c, err)
	}
	return c.JSON(http.StatusOK, buildItemListResponse(items, limit, offset))
}

func (h *ItemHandler) stats(c echo.Context) error {
	stats, err := h.items.Stats(c.Request().Context())
	if err != nil {
		return writeItemError(c, err)
	}
	return c.JSON(http.StatusOK, buildItemStatsResponse(stats))
}

func (h *ItemHandler) get(c echo.Context) error {
	id, ok := parseItemID(c)
	if !ok {
		return nil
	}
	item, err := h.items.Get(c.Request().Context(), id)
	if err != nil {
		return writeItemError(c, err)
	}
	return c.JSON(http.StatusOK, buildItemResponse(item))
}

func (h *ItemHandler) create(c echo.Context) error {
	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	item, err := h.items.Create(c.Request().Context(), input)
	if err != nil {
		return writeItemError(c, err)
	}
	return c.JSON(http.StatusCreated, buildItemResponse(item))
}

func (h *ItemHandler) update(c echo.Context) error {
	id, ok := parseItemID(c)
	if !ok {
		return nil
	}
	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	item, err := h.items.Update(c.Request().Context(), id, input)
	if err != nil {
		return writeItemError(c, err)
	}
	return c.JSON(http.StatusOK, buildItemResponse(item))
}

func (h *ItemHandler) delete(c echo.Context) error {
	id, ok := parseItemID(c)
	if !ok {
		return nil
	}
	if err := h.items.Delete(c.Request().Context(), id); err != nil {
		return writeItemError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("message", "item deleted"))
}

// parseItemID resolves the :id path parameter. When it returns false the
// rejection has already been written.
func parseItemID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, util.Error("invalid item id"))
		return uuid.Nil, false
	}
	return id, true
}

func parseIntParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func writeItemError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrItemNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	default:
		c.Logger().Errorf("items: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("internal server error"))
	}
}
