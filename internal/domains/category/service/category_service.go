package service

import (
	"context"
	"fmt"
	"net/url"

	"biblioteca-console/internal/domains/category"
	"biblioteca-console/internal/gateway"
)

type categoryServiceImpl struct {
	api *gateway.Client
}

func NewCategoryService(api *gateway.Client) category.Service {
	return &categoryServiceImpl{api: api}
}

func (s *categoryServiceImpl) List(ctx context.Context) ([]category.Category, error) {
	var categories []category.Category
	if err := s.api.Get(ctx, "/categorias", &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryServiceImpl) Get(ctx context.Context, id int64) (*category.Category, error) {
	var cat category.Category
	if err := s.api.Get(ctx, fmt.Sprintf("/categorias/%d", id), &cat); err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &cat, nil
}

func (s *categoryServiceImpl) SearchByName(ctx context.Context, name string) ([]category.Category, error) {
	var categories []category.Category
	path := "/categorias/buscar?nombre=" + url.QueryEscape(name)
	if err := s.api.Get(ctx, path, &categories); err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	return categories, nil
}

func (s *categoryServiceImpl) Create(ctx context.Context, req category.SaveCategoryReq) (*category.Category, error) {
	var created category.Category
	if err := s.api.Post(ctx, "/categorias", req, &created); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &created, nil
}

func (s *categoryServiceImpl) Update(ctx context.Context, id int64, req category.SaveCategoryReq) (*category.Category, error) {
	var updated category.Category
	if err := s.api.Put(ctx, fmt.Sprintf("/categorias/%d", id), req, &updated); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &updated, nil
}

func (s *categoryServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/categorias/%d", id)); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
