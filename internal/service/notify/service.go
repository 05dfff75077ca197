package notify

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/wms/internal/domain/models"
	client "github.com/mamadbah2/wms/pkg/clients/whatsapp"
)

// MessagingService delivers operator notifications.
type MessagingService interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// MetaWhatsAppService is the production implementation backed by WhatsApp Cloud API.
type MetaWhatsAppService struct {
	client client.Client
	logger *zap.Logger
}

// NewMetaWhatsAppService wires a new service instance.
func NewMetaWhatsAppService(client client.Client, logger *zap.Logger) *MetaWhatsAppService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetaWhatsAppService{client: client, logger: logger}
}

// SendOutbound pushes a text notification.
func (s *MetaWhatsAppService) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	if req.To == "" || req.Message == "" {
		return errors.New("recipient and message are required")
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := s.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return err
	}

	if len(resp.Messages) > 0 {
		s.logger.Info("notification sent", zap.String("to", req.To), zap.String("message_id", resp.Messages[0].ID))
	}
	return nil
}

// LogService writes notifications to the log when no messaging channel is configured.
type LogService struct {
	logger *zap.Logger
}

// NewLogService wires a log-only notifier.
func NewLogService(logger *zap.Logger) *LogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogService{logger: logger}
}

// SendOutbound logs the message.
func (s *LogService) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	s.logger.Info("notification (not delivered, messaging disabled)", zap.String("to", req.To), zap.String("message", req.Message))
	return nil
}
