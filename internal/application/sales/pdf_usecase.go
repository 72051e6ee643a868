package sales

import (
	"context"
	"fmt"

	"github.com/tu-usuario/congelados-pos/internal/domain"
	"github.com/tu-usuario/congelados-pos/internal/domain/repository"
)

// PDFUseCase genera el recibo imprimible de una venta confirmada. La venta
// ya congeló nombres y precios, así que el recibo es estable aunque el
// catálogo cambie después.
type PDFUseCase struct {
	saleRepo  repository.SaleRepository
	generator ReceiptPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(saleRepo repository.SaleRepository, generator ReceiptPDFGenerator) *PDFUseCase {
	return &PDFUseCase{saleRepo: saleRepo, generator: generator}
}

// GetReceiptPDF devuelve los bytes del PDF del recibo de la venta.
func (uc *PDFUseCase) GetReceiptPDF(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("venta %s: %w", saleID, domain.ErrNotFound)
	}
	return uc.generator.GenerateReceiptPDF(ctx, sale)
}
