package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	to, subject, html string
}

type fakeSender struct{ out []captured }

func (f *fakeSender) Send(_ context.Context, to, subject, html string) error {
	f.out = append(f.out, captured{to, subject, html})
	return nil
}

func TestOfferAccepted(t *testing.T) {
	s := &fakeSender{}
	m := New(s, "Galleria", "https://galleria.test")

	err := m.SendOfferAccepted(context.Background(), OfferMail{
		To: "buyer@example.com", BuyerName: "Ben", ArtworkTitle: "Blue <Hour>",
		Price: "USD 1,250.00", CheckoutURL: "https://pay.test/s/1",
	})
	require.NoError(t, err)
	require.Len(t, s.out, 1)

	got := s.out[0]
	assert.Equal(t, "buyer@example.com", got.to)
	assert.Equal(t, "Your offer was accepted", got.subject)
	assert.Contains(t, got.html, "Hello Ben")
	assert.Contains(t, got.html, "Blue &lt;Hour&gt;")
	assert.Contains(t, got.html, `href="https://pay.test/s/1"`)
	assert.Contains(t, got.html, "Galleria")
}

func TestPartnershipApproved_WithAndWithoutPassword(t *testing.T) {
	s := &fakeSender{}
	m := New(s, "Galleria", "https://galleria.test")
	ctx := context.Background()

	require.NoError(t, m.SendPartnershipApproved(ctx, PartnershipMail{
		To: "g@example.com", ContactName: "Gia", Organization: "North Gallery", Password: "Ax123",
	}))
	require.NoError(t, m.SendPartnershipApproved(ctx, PartnershipMail{
		To: "g@example.com", ContactName: "Gia", Organization: "North Gallery",
	}))

	assert.Contains(t, s.out[0].html, "Password: Ax123")
	assert.NotContains(t, s.out[1].html, "Password:")
	assert.Contains(t, s.out[1].html, "existing account")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render("nope", map[string]any{})
	assert.Error(t, err)
}
