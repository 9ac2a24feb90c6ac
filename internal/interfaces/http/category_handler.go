package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/categorias-api/internal/application/category"
	"github.com/jhoicas/categorias-api/internal/application/dto"
	"github.com/jhoicas/categorias-api/internal/application/validation"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

// CategoryHandler maneja las peticiones HTTP de categorías (protegido).
type CategoryHandler struct {
	uc  *category.UseCase
	val *validation.Validator
	log *logger.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *category.UseCase, val *validation.Validator, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, val: val, log: log}
}

// Create godoc
// @Summary      Crear categoría
// @Description  Sin parent_id crea una raíz. El nombre es único por usuario.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "name, parent_id"
// @Success      200   {object}  dto.Envelope{data=dto.CategoryData}
// @Failure      403   {object}  dto.Envelope
// @Router       /api/category [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := bindJSON(c, &in); err != nil {
		return failFromError(c, h.log, err)
	}
	in.Normalize()
	if err := h.val.Validate(&in); err != nil {
		return failFromError(c, h.log, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return failFromError(c, h.log, err)
	}
	return ok(c, MsgCategoryCreated, dto.CategoryData{Category: *out})
}

// List godoc
// @Summary      Listar categorías como árbol
// @Description  Cada raíz trae en subCategories todos sus descendientes en lista plana. view=nested los anida por padre.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        view  query  string  false  "flat (default) o nested"
// @Success      200   {object}  dto.Envelope{data=dto.CategoryListData}
// @Failure      403   {object}  dto.Envelope
// @Router       /api/category [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	var (
		data any
		err  error
	)
	if c.Query("view") == "nested" {
		data, err = h.uc.ListNested(c.UserContext(), GetUserID(c))
	} else {
		data, err = h.uc.List(c.UserContext(), GetUserID(c))
	}
	if err != nil {
		return failFromError(c, h.log, err)
	}
	return ok(c, MsgCategoriesFound, dto.CategoryListData{Categories: data})
}

// Update godoc
// @Summary      Actualizar categoría
// @Description  Un cambio de estado se propaga a todos los descendientes.
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "name, status"
// @Success      200   {object}  dto.Envelope{data=dto.CategoryData}
// @Failure      403   {object}  dto.Envelope
// @Router       /api/category/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, valid := categoryID(c)
	if !valid {
		return fail(c, MsgNoCategory)
	}
	var in dto.UpdateCategoryRequest
	if err := bindJSON(c, &in); err != nil {
		return failFromError(c, h.log, err)
	}
	in.Normalize()
	if err := h.val.Validate(&in); err != nil {
		return failFromError(c, h.log, err)
	}
	res, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return failFromError(c, h.log, err)
	}
	msg := MsgCategoryUpdated
	if res.Cascaded {
		msg = MsgCategoryCascaded
		h.log.Debug().Str("category_id", id).Int64("affected", res.Affected).Msg("estado propagado a descendientes")
	}
	return ok(c, msg, dto.CategoryData{Category: res.Category})
}

// Delete godoc
// @Summary      Eliminar categoría
// @Description  Los hijos directos pasan al padre de la categoría eliminada (o quedan como raíz).
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.Envelope
// @Failure      403  {object}  dto.Envelope
// @Router       /api/category/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, valid := categoryID(c)
	if !valid {
		return fail(c, MsgNoCategory)
	}
	moved, err := h.uc.Delete(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return failFromError(c, h.log, err)
	}
	h.log.Debug().Str("category_id", id).Int64("reassigned", moved).Msg("categoría eliminada")
	return ok(c, MsgCategoryDeleted, nil)
}

// categoryID normaliza el :id de la ruta; un id que no es UUID no puede existir.
func categoryID(c *fiber.Ctx) (string, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", false
	}
	return id.String(), true
}
