package service

import (
	"context"
	"fmt"

	"biblioteca-console/internal/domains/auth"
	"biblioteca-console/internal/gateway"
)

type authServiceImpl struct {
	api *gateway.Client
}

func NewAuthService(api *gateway.Client) auth.Service {
	return &authServiceImpl{api: api}
}

func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginReq) (*auth.Identity, error) {
	var identity auth.Identity
	if err := s.api.Post(ctx, "/auth/login", req, &identity); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if identity.Token == "" {
		return nil, fmt.Errorf("login: backend returned no token")
	}
	return &identity, nil
}

func (s *authServiceImpl) Register(ctx context.Context, req auth.RegisterReq) error {
	if err := s.api.Post(ctx, "/auth/registro", req, nil); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}
