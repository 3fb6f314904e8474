package service

import (
	"net/url"

	"chatchat-order/order-svc/internal/domain"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(tableID string) ([]byte, error)
}

// TableQR encodes a link to the guest ordering page with the table preset.
type TableQR struct {
	BaseURL string
}

func (g TableQR) Link(tableID string) string {
	return g.BaseURL + "?table=" + url.QueryEscape(tableID)
}

func (g TableQR) Generate(tableID string) ([]byte, error) {
	if g.BaseURL == "" {
		return nil, &domain.ConfigError{Component: "table QR codes", Missing: []string{"ORDER_PAGE_URL"}}
	}
	return qrcode.Encode(g.Link(tableID), qrcode.Medium, 256)
}
