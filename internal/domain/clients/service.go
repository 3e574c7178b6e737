package clients

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("client not found")
)

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

type Input struct {
	Name  string
	Phone string
	Email string
}

func (s *Service) Create(ctx context.Context, in Input) (Client, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" {
		return Client{}, ErrInvalidInput
	}

	now := s.now()
	c := Client{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Client{}, err
	}
	return c, nil
}

// Update reemplaza la fila completa (mantiene ID y CreatedAt).
func (s *Service) Update(ctx context.Context, id string, in Input) (Client, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" {
		return Client{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Client{}, err
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Phone = strings.TrimSpace(in.Phone)
	current.Email = strings.TrimSpace(in.Email)
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Client{}, err
	}
	return current, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Client, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

// FindOrCreateByPhone busca por teléfono y crea el cliente si no existe.
// Usado por el booking público, donde el request trae datos humanos
// en vez de foreign keys.
func (s *Service) FindOrCreateByPhone(ctx context.Context, name, phone, email string) (Client, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || strings.TrimSpace(name) == "" {
		return Client{}, ErrInvalidInput
	}

	now := s.now()
	candidate := Client{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Phone:     phone,
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repo.FindOrCreateByPhone(ctx, candidate)
}
