package entity

import "time"

// ReviewStatus estado de moderación de una reseña.
type ReviewStatus string

const (
	ReviewPublished ReviewStatus = "published"
	ReviewPending   ReviewStatus = "pending"
	ReviewHidden    ReviewStatus = "hidden"
)

// Valid informa si el estado es conocido.
func (s ReviewStatus) Valid() bool {
	return s == ReviewPublished || s == ReviewPending || s == ReviewHidden
}

// Review reseña de un producto.
type Review struct {
	ID        string       `json:"id"`
	ProductID string       `json:"productId"`
	UserID    string       `json:"userId"`
	UserName  string       `json:"userName"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	Status    ReviewStatus `json:"status"`
}

// GetID implementa la clave de la colección.
func (r Review) GetID() string { return r.ID }

// Validate comprueba rating en [1,5] y referencias obligatorias.
func (r Review) Validate() error {
	if err := requireText("id", r.ID); err != nil {
		return err
	}
	if err := requireText("productId", r.ProductID); err != nil {
		return err
	}
	if err := requireText("userId", r.UserID); err != nil {
		return err
	}
	if r.Rating < 1 || r.Rating > 5 {
		return invalid("rating", "debe estar entre 1 y 5")
	}
	if !r.Status.Valid() {
		return invalid("status", "estado desconocido")
	}
	return nil
}
