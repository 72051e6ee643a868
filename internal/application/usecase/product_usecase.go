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
	"github.com/tu-usuario/congelados-pos/pkg/textfold"
)

const (
	searchMinChars = 2  // consultas más cortas devuelven lista vacía
	searchLimit    = 10 // sugerencias máximas por búsqueda
)

// ProductUseCase casos de uso CRUD y búsqueda del catálogo. El stock solo se
// modifica aquí por altas o ediciones de catálogo; las ventas lo descuentan
// en su propia transacción.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create valida y crea un producto nuevo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("nombre del producto vacío: %w", domain.ErrInvalidInput)
	}
	category := entity.Category(in.Category)
	if !category.Valid() {
		return nil, fmt.Errorf("categoría %q desconocida: %w", in.Category, domain.ErrInvalidInput)
	}
	if !in.Price.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("precio debe ser mayor que 0: %w", domain.ErrInvalidInput)
	}
	if in.Stock.IsNegative() {
		return nil, fmt.Errorf("stock no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	unit := entity.Unit(in.Unit)
	if in.Unit == "" {
		unit = entity.UnitKilogram
	}
	if !unit.Valid() {
		return nil, fmt.Errorf("unidad %q desconocida: %w", in.Unit, domain.ErrInvalidInput)
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  category,
		Price:     in.Price,
		Stock:     in.Stock,
		Unit:      unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	return toProductResponse(product), nil
}

// List lista los productos en orden de inserción.
func (uc *ProductUseCase) List() ([]dto.ProductResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update aplica los campos presentes sobre el producto.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %s: %w", id, domain.ErrNotFound)
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("nombre del producto vacío: %w", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Category != nil {
		category := entity.Category(*in.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("categoría %q desconocida: %w", *in.Category, domain.ErrInvalidInput)
		}
		product.Category = category
	}
	if in.Price != nil {
		if !in.Price.GreaterThan(decimal.Zero) {
			return nil, fmt.Errorf("precio debe ser mayor que 0: %w", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if in.Stock.IsNegative() {
			return nil, fmt.Errorf("stock no puede ser negativo: %w", domain.ErrInvalidInput)
		}
		product.Stock = *in.Stock
	}
	if in.Unit != nil {
		unit := entity.Unit(*in.Unit)
		if !unit.Valid() {
			return nil, fmt.Errorf("unidad %q desconocida: %w", *in.Unit, domain.ErrInvalidInput)
		}
		product.Unit = unit
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto del catálogo. Las ventas históricas no se
// reescriben: sus líneas ya congelaron nombre y precio.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// Search busca productos por subcadena del nombre, sin distinguir mayúsculas
// ni acentos. Consultas de menos de 2 caracteres devuelven lista vacía.
func (uc *ProductUseCase) Search(query string) ([]dto.ProductSuggestion, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < searchMinChars {
		return []dto.ProductSuggestion{}, nil
	}
	list, err := uc.repo.SearchByName(textfold.Fold(query), searchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductSuggestion, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductSuggestion{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock,
			Unit:  string(p.Unit),
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  string(p.Category),
		Price:     p.Price,
		Stock:     p.Stock,
		Unit:      string(p.Unit),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
