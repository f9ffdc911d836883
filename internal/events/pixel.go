// Package events reports committed orders to the Meta Conversions API.
// Publishing is best-effort: a lost event never fails the order.
package events

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
	"github.com/shishir1337/maneelclub-sub001/internal/service"
)

const (
	graphAPIBase   = "https://graph.facebook.com/v18.0"
	publishTimeout = 5 * time.Second
)

type PurchaseEvent struct {
	EventName    string `json:"event_name"`
	EventTime    int64  `json:"event_time"`
	EventID      string `json:"event_id"`
	ActionSource string `json:"action_source"`
	UserData     struct {
		ClientIPAddress string   `json:"client_ip_address,omitempty"`
		Phone           []string `json:"ph,omitempty"`
	} `json:"user_data"`
	CustomData struct {
		Currency string  `json:"currency"`
		Value    float64 `json:"value"`
		OrderID  string  `json:"order_id"`
	} `json:"custom_data"`
}

// PixelPublisher sends server-side Purchase events when the pixel settings
// enable it. Settings are read per publish, so toggling the pixel in the
// admin takes effect without a restart.
type PixelPublisher struct {
	settings *service.SettingsService
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

func NewPixelPublisher(settings *service.SettingsService, logger *zap.Logger) *PixelPublisher {
	return &PixelPublisher{
		settings: settings,
		endpoint: graphAPIBase,
		client:   &http.Client{Timeout: publishTimeout},
		logger:   logger,
	}
}

func (p *PixelPublisher) PublishPurchase(ctx context.Context, order *domain.Order) {
	if !p.settings.GetBool(ctx, service.SettingMetaPixelEnabled) {
		return
	}
	pixelID := p.settings.Get(ctx, service.SettingMetaPixelID)
	token := p.settings.Get(ctx, service.SettingMetaCapiAccessToken)
	if pixelID == "" || token == "" {
		return
	}

	event := PurchaseEvent{
		EventName:    "Purchase",
		EventTime:    time.Now().Unix(),
		EventID:      uuid.New().String(),
		ActionSource: "website",
	}
	event.UserData.ClientIPAddress = order.CustomerIP
	if order.Phone != "" {
		event.UserData.Phone = []string{hashSHA256(order.Phone)}
	}
	event.CustomData.Currency = "BDT"
	event.CustomData.Value = order.Total
	event.CustomData.OrderID = order.OrderNumber

	payload, err := json.Marshal(map[string]interface{}{
		"data": []PurchaseEvent{event},
	})
	if err != nil {
		p.logger.Error("marshal purchase event failed", zap.Error(err))
		return
	}

	url := fmt.Sprintf("%s/%s/events?access_token=%s", p.endpoint, pixelID, token)

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(publishCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		p.logger.Error("build purchase event request failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("publish purchase event failed",
			zap.String("order_number", order.OrderNumber),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		p.logger.Error("purchase event rejected",
			zap.String("order_number", order.OrderNumber),
			zap.Int("status", resp.StatusCode))
		return
	}

	p.logger.Info("purchase event published",
		zap.String("order_number", order.OrderNumber),
		zap.String("event_id", event.EventID))
}

func hashSHA256(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
