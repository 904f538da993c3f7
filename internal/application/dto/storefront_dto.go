package dto

// AddCartItemRequest agrega una unidad del producto al carrito.
type AddCartItemRequest struct {
	ProductID string `json:"productId"`
}

// UpdateCartItemRequest fija la cantidad de una línea; 0 o menos la elimina.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// ReviewRequest reseña enviada por el cliente con sesión abierta.
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
