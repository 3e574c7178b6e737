package settings

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) Get(ctx context.Context) (Settings, error) {
	return s.repo.Get(ctx)
}

type Input struct {
	ClinicName string
	Phone      string
	Email      string
	Address    string
}

func (s *Service) Save(ctx context.Context, in Input) (Settings, error) {
	if strings.TrimSpace(in.ClinicName) == "" {
		return Settings{}, ErrInvalidInput
	}

	out := Settings{
		ClinicName: strings.TrimSpace(in.ClinicName),
		Phone:      strings.TrimSpace(in.Phone),
		Email:      strings.TrimSpace(in.Email),
		Address:    strings.TrimSpace(in.Address),
		UpdatedAt:  s.now(),
	}

	if err := s.repo.Save(ctx, out); err != nil {
		return Settings{}, err
	}
	return out, nil
}
