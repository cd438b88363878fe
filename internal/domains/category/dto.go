package category

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SaveCategoryReq is the form payload for both create and edit.
// Name is the only required field; description is free text.
type SaveCategoryReq struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion"`
}

func (r SaveCategoryReq) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("el nombre es obligatorio"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 1000),
		),
	)
}

// ListResp is what the category page renders: the full collection, already
// filtered server-side of the console when a search term was given.
type ListResp struct {
	Categories []Category `json:"categorias"`
	Total      int        `json:"total"`
}

func NewListResp(categories []Category) *ListResp {
	if categories == nil {
		categories = []Category{}
	}
	return &ListResp{Categories: categories, Total: len(categories)}
}
