package book

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SaveBookReq is the book form payload for create and edit. Every field is
// mandatory in the form.
type SaveBookReq struct {
	Title      string `json:"titulo"`
	Author     string `json:"autor"`
	ISBN       string `json:"isbn"`
	CategoryID int64  `json:"idCategoria"`
}

func (r SaveBookReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("el título es obligatorio"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Author,
			validation.Required.Error("el autor es obligatorio"),
			validation.Length(1, 255),
		),
		validation.Field(&r.ISBN,
			validation.Required.Error("el ISBN es obligatorio"),
			validation.Length(1, 32),
		),
		validation.Field(&r.CategoryID,
			validation.Required.Error("la categoría es obligatoria"),
			validation.Min(int64(1)),
		),
	)
}

type ListResp struct {
	Books []Book `json:"libros"`
	Total int    `json:"total"`
}

func NewListResp(books []Book) *ListResp {
	if books == nil {
		books = []Book{}
	}
	return &ListResp{Books: books, Total: len(books)}
}
