package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rmedina/segurapp-api/internal/repository"
)

// DocumentService renders printable documents for the back office
type DocumentService struct {
	policyRepo repository.PolicyRepository
}

func NewDocumentService(policyRepo repository.PolicyRepository) *DocumentService {
	return &DocumentService{policyRepo: policyRepo}
}

// PolicyStatement renders the policy's payment ledger as a PDF
func (s *DocumentService) PolicyStatement(ctx context.Context, policyID uint) ([]byte, string, error) {
	policy, err := s.policyRepo.FindByIDWithDetails(ctx, policyID)
	if err != nil {
		return nil, "", asNotFound(err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Estado de Cuenta - Poliza #%d", policy.ID))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(60, 8, "Placa:")
	pdf.Cell(60, 8, policy.Vehicle.PlateNumber)
	pdf.Ln(6)
	pdf.Cell(60, 8, "Aseguradora:")
	pdf.Cell(60, 8, policy.Company.Name)
	pdf.Ln(6)
	pdf.Cell(60, 8, "Tipo de seguro:")
	pdf.Cell(60, 8, policy.InsuranceType)
	pdf.Ln(6)
	pdf.Cell(60, 8, "Vigencia:")
	pdf.Cell(60, 8, fmt.Sprintf("%s a %s", policy.StartDate.Format("2006-01-02"), policy.EndDate.Format("2006-01-02")))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(30, 8, "Fecha")
	pdf.Cell(45, 8, "Recibo")
	pdf.Cell(30, 8, "Metodo")
	pdf.Cell(30, 8, "Monto")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, payment := range policy.Payments {
		pdf.Cell(30, 7, payment.PaymentDate.Format("2006-01-02"))
		pdf.Cell(45, 7, payment.ReceiptNumber)
		pdf.Cell(30, 7, payment.Method)
		pdf.Cell(30, 7, fmt.Sprintf("%.2f", payment.Amount))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(60, 8, "Total pagado:")
	pdf.Cell(40, 8, fmt.Sprintf("%.2f", policy.PaidAmount))
	pdf.Ln(6)
	pdf.Cell(60, 8, "Deuda restante:")
	pdf.Cell(40, 8, fmt.Sprintf("%.2f", policy.RemainingDebt))
	pdf.Ln(6)

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("policy_%d_statement_%s.pdf", policy.ID, time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
