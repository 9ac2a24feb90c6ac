package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// CreateCategoryRequest entrada para crear una categoría (raíz si ParentID es nil).
type CreateCategoryRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"`
}

// Normalize recorta espacios y lleva el nombre a NFC; un parent_id vacío equivale a raíz
// y uno válido queda en su forma canónica (minúsculas), igual que el :id de la ruta.
func (r *CreateCategoryRequest) Normalize() {
	r.Name = NormalizeName(r.Name)
	if r.ParentID == nil {
		return
	}
	p := strings.TrimSpace(*r.ParentID)
	if p == "" {
		r.ParentID = nil
		return
	}
	if id, err := uuid.Parse(p); err == nil {
		p = id.String()
	}
	r.ParentID = &p
}

// UpdateCategoryRequest entrada para actualizar nombre y/o estado.
type UpdateCategoryRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=200"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Normalize recorta y normaliza el nombre; un nombre o estado vacío cuenta como no enviado.
func (r *UpdateCategoryRequest) Normalize() {
	if r.Name != nil {
		n := NormalizeName(*r.Name)
		if n == "" {
			r.Name = nil
		} else {
			r.Name = &n
		}
	}
	if r.Status != nil && *r.Status == "" {
		r.Status = nil
	}
}

// NormalizeName aplica TrimSpace y normalización Unicode NFC.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	ParentID  *string   `json:"parent_id"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryTreeResponse raíz con todos sus descendientes en una lista plana.
type CategoryTreeResponse struct {
	CategoryResponse
	SubCategories []CategoryResponse `json:"subCategories"`
}

// CategoryNodeResponse nodo del árbol anidado (view=nested).
type CategoryNodeResponse struct {
	CategoryResponse
	SubCategories []CategoryNodeResponse `json:"subCategories"`
}

// CategoryData envoltura de data para create/update.
type CategoryData struct {
	Category CategoryResponse `json:"category"`
}

// CategoryListData envoltura de data para el listado.
type CategoryListData struct {
	Categories any `json:"categories"`
}

// UpdateCategoryResult resultado de Update: la categoría y si hubo cascada de estado.
type UpdateCategoryResult struct {
	Category CategoryResponse
	Cascaded bool
	Affected int64
}
