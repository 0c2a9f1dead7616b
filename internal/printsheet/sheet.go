// Package printsheet builds the printable technical sheet of an asset,
// including a QR code linking back to the asset's page.
package printsheet

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/satriahrh/inventario/domain/entities"
)

// QRSize is the edge length of the QR image in pixels
const QRSize = 256

// Sheet is everything the print template renders
type Sheet struct {
	Asset       entities.Asset
	DetailURL   string
	GeneratedAt time.Time
	// QRCode is a PNG encoded as a data URI, ready for an <img src>
	QRCode string
}

// DetailURL is the link encoded in the QR code of an asset
func DetailURL(baseURL, assetID string) string {
	return strings.TrimRight(baseURL, "/") + "/assets/" + assetID
}

// Build renders the QR code for the asset and assembles the sheet.
// Unsaved assets have no id; their QR code points at the asset list.
func Build(asset entities.Asset, baseURL string, now time.Time) (*Sheet, error) {
	link := DetailURL(baseURL, asset.ID)
	if asset.ID == "" {
		link = strings.TrimRight(baseURL, "/") + "/"
	}

	png, err := qrcode.Encode(link, qrcode.Medium, QRSize)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return &Sheet{
		Asset:       asset,
		DetailURL:   link,
		GeneratedAt: now,
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}, nil
}
