package twilio

import (
	"context"
	"fmt"
	"strings"

	"studio/config"

	"github.com/rs/zerolog/log"
	twilioGo "github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const whatsAppPrefix = "whatsapp:"

type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type senderImpl struct {
	api            messageCreator
	fromNumber     string
	whatsAppNumber string
}

// New returns a Sender that only logs messages when no account is configured.
func New(config *config.Config) Sender {
	cfg := config.External.Twilio
	if cfg.AccountSID == "" {
		log.Warn().Msg("Twilio account not configured, messages will only be logged")

		return &logSender{}
	}

	client := twilioGo.NewRestClientWithParams(twilioGo.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &senderImpl{
		api:            client.Api,
		fromNumber:     cfg.FromNumber,
		whatsAppNumber: cfg.WhatsAppNumber,
	}
}

// Params builds the outgoing message. E.164 numbers go over WhatsApp when a WhatsApp sender exists.
func (s *senderImpl) Params(to, body string) *twilioApi.CreateMessageParams {
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)

	if strings.HasPrefix(to, "+") && s.whatsAppNumber != "" {
		params.SetTo(whatsAppPrefix + to)
		params.SetFrom(whatsAppPrefix + s.whatsAppNumber)

		return params
	}

	params.SetTo(to)
	params.SetFrom(s.fromNumber)

	return params
}

func (s *senderImpl) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	resp, err := s.api.CreateMessage(s.Params(to, body))
	if err != nil {
		return fmt.Errorf("failed to send message to %s: %w", to, err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}

	log.Info().Str("to", to).Str("sid", sid).Msg("Message sent")

	return nil
}

type logSender struct{}

func (l *logSender) Send(_ context.Context, to, body string) error {
	log.Info().Str("to", to).Str("body", body).Msg("Message not sent, twilio disabled")

	return nil
}
