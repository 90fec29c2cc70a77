package service

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes the order tracking URL.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID int) ([]byte, error) {
	data := fmt.Sprintf("%s/api/orders/%d", strings.TrimRight(g.BaseURL, "/"), orderID)
	return qrcode.Encode(data, qrcode.Medium, 256)
}
