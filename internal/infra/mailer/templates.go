package mailer

const (
	tplWelcome             = "welcome"
	tplOfferAccepted       = "offer_accepted"
	tplOfferRejected       = "offer_rejected"
	tplPartnershipApproved = "partnership_approved"
	tplPartnershipRejected = "partnership_rejected"
)

const layoutHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Site}}</title>
  <style>
    body { font-family: Georgia, serif; line-height: 1.6; color: #222; background: #f4f1ec; }
    .container { max-width: 600px; margin: 0 auto; background: #fff; }
    .header { background: #1d1d1b; color: #f4f1ec; padding: 24px; text-align: center; letter-spacing: 2px; }
    .content { padding: 32px; }
    .price { font-size: 22px; font-weight: bold; }
    .button { display: inline-block; padding: 12px 28px; background: #1d1d1b; color: #fff; text-decoration: none; }
    .footer { padding: 20px; text-align: center; font-size: 12px; color: #777; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.Site}}</div>
    <div class="content">{{template "content" .}}</div>
    <div class="footer"><a href="{{.BaseURL}}">{{.BaseURL}}</a></div>
  </div>
</body>
</html>`

const welcomeHTML = `
<p>Hello {{.Name}},</p>
<p>Your account on {{.Site}} has been created. You can now follow auctions,
galleries and museum events and make offers on artworks.</p>
<p><a class="button" href="{{.BaseURL}}">Visit {{.Site}}</a></p>`

const offerAcceptedHTML = `
<p>Hello {{.Name}},</p>
<p>Good news: your offer for <strong>{{.Artwork}}</strong> has been accepted.</p>
<p class="price">{{.Price}}</p>
{{if .Note}}<p>{{.Note}}</p>{{end}}
{{if .CheckoutURL}}<p><a class="button" href="{{.CheckoutURL}}">Complete your purchase</a></p>{{end}}`

const offerRejectedHTML = `
<p>Hello {{.Name}},</p>
<p>Thank you for your offer of {{.Price}} for <strong>{{.Artwork}}</strong>.
Unfortunately it was not accepted.</p>
{{if .Note}}<p>{{.Note}}</p>{{end}}`

const partnershipApprovedHTML = `
<p>Hello {{.Name}},</p>
<p>The partnership request from <strong>{{.Organization}}</strong> has been approved.</p>
{{if .Password}}<p>An account was created for you:</p>
<p>Email: {{.Email}}<br>Password: {{.Password}}</p>
<p>Please change the password after your first login.</p>
{{else}}<p>Sign in with your existing account ({{.Email}}) to manage your listings.</p>{{end}}
<p><a class="button" href="{{.BaseURL}}/login">Sign in</a></p>`

const partnershipRejectedHTML = `
<p>Hello {{.Name}},</p>
<p>Thank you for your interest in partnering with {{.Site}}. We are unable to
approve the request from <strong>{{.Organization}}</strong> at this time.</p>
{{if .Note}}<p>{{.Note}}</p>{{end}}`
