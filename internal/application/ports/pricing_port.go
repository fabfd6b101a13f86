package ports

import (
	"context"
	"time"

	"github.com/jhoicas/optimal-price/internal/domain/entity"
)

// PricingService puerto de salida hacia el servicio remoto de recomendación de precios.
// La aplicación solo conoce este contrato; el adaptador HTTP vive en infrastructure/pricingapi.
type PricingService interface {
	// PredictPrice envía la entrada y devuelve la recomendación validada.
	// Los errores deben envolver domain.ErrTransport, domain.ErrServiceStatus o
	// domain.ErrMalformedResponse para que el coordinador pueda clasificarlos.
	PredictPrice(ctx context.Context, in entity.PricingInput) (*entity.PricingResult, error)
}

// SubmissionRecorder recibe los eventos del ciclo de vida de cada envío (métricas).
type SubmissionRecorder interface {
	SubmissionIgnored()
	SubmissionCompleted(status entity.RequestStatus, failureKind string, elapsed time.Duration)
}

// SessionObserver recibe la apertura y cierre de sesiones del dashboard.
type SessionObserver interface {
	SessionOpened()
	SessionClosed()
}

// ReportGenerator genera el documento descargable de una recomendación.
type ReportGenerator interface {
	GenerateRecommendationPDF(
		ctx context.Context,
		in entity.PricingInput,
		res entity.PricingResult,
		generatedAt time.Time,
	) ([]byte, error)
}
