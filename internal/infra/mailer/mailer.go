// Package mailer renders and sends the transactional HTML emails.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"

	"github.com/jordan-wright/email"
	"go.uber.org/zap"
)

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Password string
	Name     string
}

type smtpSender struct {
	cfg  SMTPConfig
	auth smtp.Auth
}

func NewSMTPSender(cfg SMTPConfig) Sender {
	return &smtpSender{cfg: cfg, auth: smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host)}
}

func (s *smtpSender) Send(ctx context.Context, to, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", s.cfg.Name, s.cfg.From)
	e.To = []string{to}
	e.Subject = subject
	e.HTML = []byte(html)

	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	if err := e.Send(addr, s.auth); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// logSender stands in when SMTP is not configured.
type logSender struct{ log *zap.Logger }

func NewLogSender(log *zap.Logger) Sender {
	return logSender{log: log}
}

func (l logSender) Send(_ context.Context, to, subject, _ string) error {
	l.log.Info("email not sent, SMTP disabled", zap.String("to", to), zap.String("subject", subject))
	return nil
}

type Mailer struct {
	sender  Sender
	site    string
	baseURL string
}

func New(sender Sender, siteName, baseURL string) *Mailer {
	return &Mailer{sender: sender, site: siteName, baseURL: baseURL}
}

func (m *Mailer) send(ctx context.Context, to, subject, tpl string, data map[string]any) error {
	data["Site"] = m.site
	data["BaseURL"] = m.baseURL
	html, err := Render(tpl, data)
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, to, subject, html)
}

func (m *Mailer) SendWelcome(ctx context.Context, to, name string) error {
	return m.send(ctx, to, "Welcome to "+m.site, tplWelcome, map[string]any{"Name": name})
}

type OfferMail struct {
	To           string
	BuyerName    string
	ArtworkTitle string
	Price        string
	Note         string
	CheckoutURL  string
}

func (m *Mailer) SendOfferAccepted(ctx context.Context, o OfferMail) error {
	return m.send(ctx, o.To, "Your offer was accepted", tplOfferAccepted, map[string]any{
		"Name": o.BuyerName, "Artwork": o.ArtworkTitle, "Price": o.Price,
		"Note": o.Note, "CheckoutURL": o.CheckoutURL,
	})
}

func (m *Mailer) SendOfferRejected(ctx context.Context, o OfferMail) error {
	return m.send(ctx, o.To, "Update on your offer", tplOfferRejected, map[string]any{
		"Name": o.BuyerName, "Artwork": o.ArtworkTitle, "Price": o.Price, "Note": o.Note,
	})
}

type PartnershipMail struct {
	To           string
	ContactName  string
	Organization string
	Password     string
	Note         string
}

func (m *Mailer) SendPartnershipApproved(ctx context.Context, p PartnershipMail) error {
	return m.send(ctx, p.To, "Your partnership with "+m.site+" is approved", tplPartnershipApproved, map[string]any{
		"Name": p.ContactName, "Organization": p.Organization, "Email": p.To, "Password": p.Password,
	})
}

func (m *Mailer) SendPartnershipRejected(ctx context.Context, p PartnershipMail) error {
	return m.send(ctx, p.To, "Update on your partnership request", tplPartnershipRejected, map[string]any{
		"Name": p.ContactName, "Organization": p.Organization, "Note": p.Note,
	})
}

var templates = map[string]*template.Template{}

func init() {
	for name, body := range map[string]string{
		tplWelcome:             welcomeHTML,
		tplOfferAccepted:       offerAcceptedHTML,
		tplOfferRejected:       offerRejectedHTML,
		tplPartnershipApproved: partnershipApprovedHTML,
		tplPartnershipRejected: partnershipRejectedHTML,
	} {
		t := template.Must(template.New("layout").Parse(layoutHTML))
		template.Must(t.New("content").Parse(body))
		templates[name] = t
	}
}

// Render executes a named template inside the shared layout.
func Render(name string, data map[string]any) (string, error) {
	t, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
