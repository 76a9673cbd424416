package payments

import (
	"fmt"
	"strings"
)

// Service builds payment links for subscription renewals. The test
// setup points them at our own HTTP server, which emulates a
// successful payment.
type Service struct {
	baseURL string
}

func NewService(baseURL string) *Service {
	return &Service{baseURL: strings.TrimRight(baseURL, "/")}
}

// RenewalURL is the link a blocked member follows to renew their
// subscription.
func (s *Service) RenewalURL(userID int64) string {
	return fmt.Sprintf("%s/payments/pay?user=%d", s.baseURL, userID)
}
