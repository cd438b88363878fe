package service

import (
	"context"
	"fmt"
	"net/url"

	"biblioteca-console/internal/domains/member"
	"biblioteca-console/internal/gateway"
)

type memberServiceImpl struct {
	api *gateway.Client
}

func NewMemberService(api *gateway.Client) member.Service {
	return &memberServiceImpl{api: api}
}

func (s *memberServiceImpl) List(ctx context.Context) ([]member.Member, error) {
	var members []member.Member
	if err := s.api.Get(ctx, "/socios", &members); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *memberServiceImpl) Get(ctx context.Context, id int64) (*member.Member, error) {
	var m member.Member
	if err := s.api.Get(ctx, fmt.Sprintf("/socios/%d", id), &m); err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}

func (s *memberServiceImpl) ByDNI(ctx context.Context, dni string) (*member.Member, error) {
	var m member.Member
	if err := s.api.Get(ctx, "/socios/dni/"+url.PathEscape(dni), &m); err != nil {
		return nil, fmt.Errorf("member by dni: %w", err)
	}
	return &m, nil
}

func (s *memberServiceImpl) ByNumber(ctx context.Context, number int64) (*member.Member, error) {
	var m member.Member
	if err := s.api.Get(ctx, fmt.Sprintf("/socios/numero/%d", number), &m); err != nil {
		return nil, fmt.Errorf("member by number: %w", err)
	}
	return &m, nil
}

func (s *memberServiceImpl) SearchByName(ctx context.Context, name string) ([]member.Member, error) {
	var members []member.Member
	path := "/socios/buscar/nombre?nombre=" + url.QueryEscape(name)
	if err := s.api.Get(ctx, path, &members); err != nil {
		return nil, fmt.Errorf("search members: %w", err)
	}
	return members, nil
}

func (s *memberServiceImpl) HasActiveLoans(ctx context.Context, id int64) (bool, error) {
	var hasLoans bool
	if err := s.api.Get(ctx, fmt.Sprintf("/socios/%d/prestamos-activos", id), &hasLoans); err != nil {
		return false, fmt.Errorf("member active loans: %w", err)
	}
	return hasLoans, nil
}

func (s *memberServiceImpl) Create(ctx context.Context, req member.CreateMemberReq) (*member.Member, error) {
	var created member.Member
	if err := s.api.Post(ctx, "/socios", req, &created); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return &created, nil
}

func (s *memberServiceImpl) Update(ctx context.Context, id int64, req member.UpdateMemberReq) (*member.Member, error) {
	var updated member.Member
	if err := s.api.Put(ctx, fmt.Sprintf("/socios/%d", id), req, &updated); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return &updated, nil
}

func (s *memberServiceImpl) Delete(ctx context.Context, id int64) error {
	if err := s.api.Delete(ctx, fmt.Sprintf("/socios/%d", id)); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
