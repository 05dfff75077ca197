package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/wms/internal/domain/models"
	client "github.com/mamadbah2/wms/pkg/clients/whatsapp"
)

type stubClient struct {
	got client.SendTextMessageRequest
	err error
}

func (s *stubClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &client.SendTextMessageResponse{}, nil
}

func TestSendOutbound(t *testing.T) {
	stub := &stubClient{}
	svc := NewMetaWhatsAppService(stub, nil)

	err := svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "66800000000", Message: "refill A-01"})
	require.NoError(t, err)
	assert.Equal(t, "refill A-01", stub.got.Body)
}

func TestSendOutboundErrors(t *testing.T) {
	stub := &stubClient{err: errors.New("boom")}
	svc := NewMetaWhatsAppService(stub, nil)

	assert.Error(t, svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "1", Message: "x"}))
	assert.Error(t, svc.SendOutbound(context.Background(), models.OutboundMessageRequest{To: "", Message: "x"}))
}

func TestLogServiceNeverFails(t *testing.T) {
	assert.NoError(t, NewLogService(nil).SendOutbound(context.Background(), models.OutboundMessageRequest{To: "1", Message: "x"}))
}
