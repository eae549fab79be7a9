package payment

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/lapangankita/field-booking/internal/models"
)

// Client creates hosted-checkout links for a booking's outstanding
// amount. A nil *Client means online payment is not configured and
// only manual transfer proof is available.
type Client struct {
	pref preference.Client
}

func New(accessToken string) (*Client, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &Client{pref: preference.NewClient(cfg)}, nil
}

func (c *Client) CheckoutLink(
	ctx context.Context,
	b *models.Booking,
	amount int,
) (string, error) {

	req := preference.Request{
		ExternalReference: fmt.Sprintf("booking-%d", b.ID),
		Items: []preference.ItemRequest{
			{
				Title: fmt.Sprintf(
					"%s %s %s-%s",
					b.Field.Name,
					b.Date,
					b.StartTime.Format("15:04"),
					b.EndTime.Format("15:04"),
				),
				Quantity:  1,
				UnitPrice: float64(amount),
			},
		},
	}

	resp, err := c.pref.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create preference: %w", err)
	}

	return resp.InitPoint, nil
}
