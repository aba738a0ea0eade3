package services

import (
	"fmt"

	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
	"github.com/brightloom/storefront-go/internal/infrastructure/security"
)

// PaymentGateway abstracts the payment provider. Checkout only needs a
// client secret for the amount being charged.
type PaymentGateway interface {
	CreatePaymentIntent(amount float64, currency string) (string, error)
}

// OfflineGateway is the provider used when no real processor is configured.
// It issues a locally generated secret so checkout can complete in
// development and demo environments.
type OfflineGateway struct{}

func (OfflineGateway) CreatePaymentIntent(amount float64, currency string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("payment amount must be positive, got %v", amount)
	}
	return "pi_" + security.GenerateULID(), nil
}

// PaymentService creates payment intents for checkout.
type PaymentService struct {
	gateway PaymentGateway
	logger  *logging.ChanneledLogger
}

func NewPaymentService(gateway PaymentGateway, logger *logging.ChanneledLogger) *PaymentService {
	return &PaymentService{
		gateway: gateway,
		logger:  logger,
	}
}

// CreatePayment returns a client secret for the given amount in the default
// currency.
func (s *PaymentService) CreatePayment(amount float64) (string, error) {
	secret, err := s.gateway.CreatePaymentIntent(amount, "usd")
	if err != nil {
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	s.logger.Commerce().Info("Payment intent created", "amount", amount)
	return secret, nil
}
