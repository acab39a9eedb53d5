package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListContainers godoc
// @Summary List containers
// @Description Get all containers of the authenticated user with shelves and items
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 401 {object} object{error=string}
// @Router /api/containers [get]
func (h *InventoryHandler) ListContainersDoc() {}

// CreateContainer godoc
// @Summary Create container
// @Description Create a new freezer or fridge container
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,kind=string} true "Container data"
// @Success 201 {object} object{success=bool,data=object}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/containers [post]
func (h *InventoryHandler) CreateContainerDoc() {}

// CreateShelf godoc
// @Summary Create shelf
// @Description Create a shelf inside a container; position 0 appends at the bottom
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Container ID"
// @Param request body object{name=string,position=int} true "Shelf data"
// @Success 201 {object} object{success=bool,data=object}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/containers/{id}/shelves [post]
func (h *InventoryHandler) CreateShelfDoc() {}

// UpsertItem godoc
// @Summary Create or overwrite an item
// @Description Set an item's quantity and unit on a shelf
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Shelf ID"
// @Param request body object{name=string,quantity=int,unit=string} true "Item data"
// @Success 201 {object} object{success=bool,data=object}
// @Router /api/shelves/{id}/items [post]
func (h *InventoryHandler) UpsertItemDoc() {}
