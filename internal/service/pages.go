package service

// PendingInstructions is the guidance shown while a payment awaits settlement.
type PendingInstructions struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

// PendingInstructionsFor picks instructions by the provider's payment type.
func PendingInstructionsFor(paymentType string) PendingInstructions {
	switch paymentType {
	case "ticket", "atm":
		return PendingInstructions{
			Title:       "Cash payment pending",
			Description: "You have 24-72 hours to complete the payment",
			Steps: []string{
				"Go to any OXXO, 7-Eleven or convenience store",
				"Give the payment code to the cashier",
				"Keep your payment receipt",
				"Your tickets will arrive by email once the payment is confirmed",
			},
		}
	case "bank_transfer":
		return PendingInstructions{
			Title:       "Bank transfer pending",
			Description: "Your payment is being processed",
			Steps: []string{
				"Make the transfer using the details provided",
				"The bank may take 1-2 business days to process it",
				"You will get an email confirmation once it is credited",
			},
		}
	default:
		return PendingInstructions{
			Title:       "Payment in progress",
			Description: "Your payment is being verified",
			Steps: []string{
				"We are verifying your payment with the financial institution",
				"This can take a few minutes",
				"We will notify you by email once it is confirmed",
			},
		}
	}
}

// PendingReservationNotice warns that seats are held only temporarily.
const PendingReservationNotice = "Your seats are reserved temporarily. If the payment is not completed in time, the reservation is cancelled automatically."

// DefaultFailureMessage is shown for unknown rejection details.
const DefaultFailureMessage = "The payment could not be processed"

var failureMessages = map[string]string{
	"cc_rejected_bad_filled_card_number":   "The card number is incorrect",
	"cc_rejected_bad_filled_date":          "The expiration date is incorrect",
	"cc_rejected_bad_filled_other":         "Some card details are incorrect",
	"cc_rejected_bad_filled_security_code": "The security code is incorrect",
	"cc_rejected_blacklist":                "Your card cannot process payments right now",
	"cc_rejected_call_for_authorize":       "You must authorize the payment with your bank",
	"cc_rejected_card_disabled":            "Your card is disabled",
	"cc_rejected_card_error":               "Your card could not process the payment",
	"cc_rejected_duplicated_payment":       "You already made a payment for this amount",
	"cc_rejected_high_risk":                "The payment was rejected for security reasons",
	"cc_rejected_insufficient_amount":      "Insufficient funds",
	"cc_rejected_invalid_installments":     "The card does not allow installments",
	"cc_rejected_max_attempts":             "You exceeded the maximum number of attempts",
	"cc_rejected_other_reason":             "The payment was rejected",
}

// FailureMessageFor maps a provider status detail to a human-readable message.
func FailureMessageFor(statusDetail string) string {
	if msg, ok := failureMessages[statusDetail]; ok {
		return msg
	}
	return DefaultFailureMessage
}

// FailureTips are the generic suggestions shown on the failure page.
var FailureTips = []string{
	"Check that your card details are correct",
	"Make sure you have sufficient funds",
	"Try another payment method",
	"Contact your bank if the problem persists",
}
