package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/congelados-pos/internal/application/dto"
	"github.com/tu-usuario/congelados-pos/internal/domain"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
	"github.com/tu-usuario/congelados-pos/internal/domain/repository"
)

// ClientUseCase casos de uso del libro de clientes. La deuda solo cambia por
// ventas a crédito confirmadas (motor de ventas) o por AdjustDebt.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create valida y crea un cliente. La deuda inicia en 0.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("nombre del cliente vacío: %w", domain.ErrInvalidInput)
	}
	if in.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("límite de crédito no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	client := &entity.Client{
		ID:          uuid.New().String(),
		Name:        name,
		Phone:       in.Phone,
		Email:       in.Email,
		Address:     in.Address,
		CreditLimit: in.CreditLimit,
		CurrentDebt: decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	return toClientResponse(client), nil
}

// List lista los clientes en orden de inserción.
func (uc *ClientUseCase) List() ([]dto.ClientResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return items, nil
}

// Update aplica los campos presentes sobre el cliente. La deuda actual no se
// toca por aquí.
func (uc *ClientUseCase) Update(id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("nombre del cliente vacío: %w", domain.ErrInvalidInput)
		}
		client.Name = name
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if in.CreditLimit != nil {
		if in.CreditLimit.IsNegative() {
			return nil, fmt.Errorf("límite de crédito no puede ser negativo: %w", domain.ErrInvalidInput)
		}
		client.CreditLimit = *in.CreditLimit
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina un cliente del libro.
func (uc *ClientUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// AdjustDebt aplica un ajuste manual a la deuda (pago recibido, corrección).
// El libro es un primitivo contable: no aplica tope de crédito.
func (uc *ClientUseCase) AdjustDebt(id string, in dto.AdjustDebtRequest) (*dto.ClientResponse, error) {
	if in.Delta.IsZero() {
		return nil, fmt.Errorf("delta no puede ser 0: %w", domain.ErrInvalidInput)
	}
	if err := uc.repo.AdjustDebt(id, in.Delta, time.Now()); err != nil {
		return nil, err
	}
	return uc.GetByID(id)
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		CreditLimit: c.CreditLimit,
		CurrentDebt: c.CurrentDebt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
