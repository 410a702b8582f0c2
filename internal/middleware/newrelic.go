package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"

	"ticketportal/internal/domain"
)

// TransactionAttributes annotates the New Relic transaction started by nrgin
// with the payment reference and session subject, so a support engineer can
// find every request that touched one order.
func TransactionAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		txn := nrgin.Transaction(c)
		if txn == nil {
			c.Next()
			return
		}

		if ref := c.Query(domain.ParamExternalReference); ref != "" {
			txn.AddAttribute("portal.externalReference", ref)
		}
		if paymentID := c.Query(domain.ParamPaymentID); paymentID != "" {
			txn.AddAttribute("portal.paymentId", paymentID)
		}
		if session, ok := SessionFrom(c); ok && session.Subject != "" {
			txn.AddAttribute("portal.subject", session.Subject)
		}

		c.Next()

		// Record error if present.
		for _, err := range c.Errors {
			txn.NoticeError(err.Err)
		}
	}
}
