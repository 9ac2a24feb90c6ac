package entity

import "time"

// Estados válidos de una Category.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Category representa una categoría jerárquica de un usuario.
// La jerarquía se guarda plana: cada registro apunta a su padre por id.
type Category struct {
	ID        string
	OwnerID   string
	ParentID  *string // nil si es raíz
	Name      string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot informa si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// Clone devuelve una copia independiente (incluido el puntero al padre).
func (c *Category) Clone() *Category {
	if c == nil {
		return nil
	}
	cp := *c
	if c.ParentID != nil {
		p := *c.ParentID
		cp.ParentID = &p
	}
	return &cp
}

// CategoryPatch describe los campos a modificar en UpdateOne / UpdateMany.
// Los punteros nil no se tocan. SetParent indica que ParentID (nil = raíz) reemplaza al padre actual.
type CategoryPatch struct {
	Name      *string
	Status    *string
	SetParent bool
	ParentID  *string
	UpdatedAt time.Time
}

// Apply aplica el patch sobre c.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.SetParent {
		if p.ParentID == nil {
			c.ParentID = nil
		} else {
			parent := *p.ParentID
			c.ParentID = &parent
		}
	}
	if !p.UpdatedAt.IsZero() {
		c.UpdatedAt = p.UpdatedAt
	}
}

// IsValidStatus informa si s es un estado de categoría conocido.
func IsValidStatus(s string) bool {
	return s == StatusActive || s == StatusInactive
}
