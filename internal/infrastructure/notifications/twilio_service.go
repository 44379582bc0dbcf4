package notifications

import (
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Davie-07/KTVC-FINAL-sub001/domain"
)

// TwilioGateway implements domain.SMSGateway.
type TwilioGateway struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewTwilioGateway creates a new Twilio SMS gateway.
func NewTwilioGateway(accountSID, authToken, fromNumber string) domain.SMSGateway {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioGateway{
		client:     client,
		fromNumber: fromNumber,
	}
}

// SendSMS implements domain.SMSGateway. When credentials are not configured
// the message is logged instead of sent.
func (t *TwilioGateway) SendSMS(to, message string) error {
	if t.fromNumber == "" {
		log.Printf("[MOCK SMS] To: %s, Message: %s", to, message)
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	_, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}
