package service

import (
	"context"
	"fmt"
	"net/url"

	"biblioteca-console/internal/domains/book"
	"biblioteca-console/internal/gateway"
)

type bookServiceImpl struct {
	api *gateway.Client
}

func NewBookService(api *gateway.Client) book.Service {
	return &bookServiceImpl{api: api}
}

func (s *bookServiceImpl) List(ctx context.Context) ([]book.Book, error) {
	var books []book.Book
	if err := s.api.Get(ctx, "/libros", &books); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *bookServiceImpl) Get(ctx context.Context, id int64) (*book.Book, error) {
	var b book.Book
	if err := s.api.Get(ctx, fmt.Sprintf("/libros/%d", id), &b); err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &b, nil
}

func (s *bookServiceImpl) Available(ctx context.Context) ([]book.Book, error) {
	var books []book.Book
	if err := s.api.Get(ctx, "/libros/disponibles", &books); err != nil {
		return nil, fmt.Errorf("available books: %w", err)
	}
	return books, nil
}

func (s *bookServiceImpl) ByState(ctx context.Context, state book.State) ([]book.Book, error) {
	var books []book.Book
	if err := s.api.Get(ctx, "/libros/estado/"+string(state), &books); err != nil {
		return nil, fmt.Errorf("books by state: %w", err)
	}
	return books, nil
}

func (s *bookServiceImpl) SearchByTitle(ctx context.Context, title string) ([]book.Book, error) {
	var books []book.Book
	path := "/libros/buscar/titulo?titulo=" + url.QueryEscape(title)
	if err := s.api.Get(ctx, path, &books); err != nil {
		return nil, fmt.Errorf("search books by title: %w", err)
	}
	return books, nil
}

func (s *bookServiceImpl) SearchByAuthor(ctx context.Context, author string) ([]book.Book, error) {
	var books []book.Book
	path := "/libros/buscar/autor?autor=" + url.QueryEscape(author)
	if err := s.api.Get(ctx, path, &books); err != nil {
		return nil, fmt.Errorf("search books by author: %w", err)
	}
	return books, nil
}

func (s *bookServiceImpl) CheckAvailability(ctx context.Context, id int64) (bool, error) {
	var available bool
	if err := s.api.Get(ctx, fmt.Sprintf("/libros/%d/disponible", id), &available); err != nil {
		return false, fmt.Errorf("check availability: %w", err)
	}
	return available, nil
}

func (s *bookServiceImpl) Create(ctx context.Context, req book.SaveBookReq) (*book.Book, error) {
	var created book.Book
	if err := s.api.Post(ctx, "/libros", req, &created); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return &created, nil
}

func (s *bookServiceImpl) Update(ctx context.Context, id int64, req book.SaveBookReq) (*book.Book, error) {
	var updated book.Book
	if err := s.api.Put(ctx, fmt.Sprintf("/libros/%d", id), req, &updated); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}
	return &updated, nil
}

func (s *bookServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/libros/%d", id)); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}
