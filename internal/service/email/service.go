package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/resend/resend-go/v3"

	"pelada-hub/internal/config"
)

type Service interface {
	SendVerificationEmail(ctx context.Context, toEmail, fullName, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error
	SendMatchInviteEmail(ctx context.Context, toEmail, recipientName, challengerTeam string, date time.Time) error
	SendCounterProposalEmail(ctx context.Context, toEmail, recipientName, proposingTeam string, newDate time.Time) error
	SendTransferOfferEmail(ctx context.Context, toEmail, playerName, teamName string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &service{
		client: client,
		config: cfg,
	}
}

var bodyTmpl = template.Must(template.New("email").Parse(`
<div style="font-family: sans-serif; max-width: 520px; margin: 0 auto;">
	<h2>{{.Title}}</h2>
	<p>Olá, {{.Name}}!</p>
	<p>{{.Body}}</p>
	{{if .Link}}<p><a href="{{.Link}}">{{.LinkLabel}}</a></p>{{end}}
	<p style="color: #888; font-size: 12px;">Pelada Hub</p>
</div>`))

type emailData struct {
	Title     string
	Name      string
	Body      string
	Link      string
	LinkLabel string
}

func (s *service) sendEmail(toEmail, subject string, data emailData) error {
	var body bytes.Buffer
	if err := bodyTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Pelada Hub <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendVerificationEmail(ctx context.Context, toEmail, fullName, verificationToken string) error {
	return s.sendEmail(toEmail, "Confirme seu email - Pelada Hub", emailData{
		Title:     "Confirme seu email",
		Name:      fullName,
		Body:      "Falta pouco para entrar em campo. Confirme seu email para ativar sua conta.",
		Link:      fmt.Sprintf("https://%s/verify-email?token=%s", s.config.Domain, verificationToken),
		LinkLabel: "Confirmar email",
	})
}

func (s *service) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	return s.sendEmail(toEmail, "Redefinir senha - Pelada Hub", emailData{
		Title:     "Redefinir senha",
		Name:      fullName,
		Body:      "Recebemos um pedido para redefinir sua senha. Se não foi você, ignore este email.",
		Link:      fmt.Sprintf("https://%s/reset-password?token=%s", s.config.Domain, resetToken),
		LinkLabel: "Redefinir senha",
	})
}

func (s *service) SendMatchInviteEmail(ctx context.Context, toEmail, recipientName, challengerTeam string, date time.Time) error {
	return s.sendEmail(toEmail, "Seu time foi desafiado! - Pelada Hub", emailData{
		Title:     "Convite de jogo",
		Name:      recipientName,
		Body:      fmt.Sprintf("%s desafiou seu time para um jogo em %s. Entre no app para aceitar, recusar ou propor outra data.", challengerTeam, date.Format("02/01/2006 15:04")),
		Link:      fmt.Sprintf("https://%s/notifications", s.config.Domain),
		LinkLabel: "Ver convite",
	})
}

func (s *service) SendCounterProposalEmail(ctx context.Context, toEmail, recipientName, proposingTeam string, newDate time.Time) error {
	return s.sendEmail(toEmail, "Nova proposta de data - Pelada Hub", emailData{
		Title:     "Nova proposta de data",
		Name:      recipientName,
		Body:      fmt.Sprintf("%s propôs uma nova data para o jogo: %s.", proposingTeam, newDate.Format("02/01/2006 15:04")),
		Link:      fmt.Sprintf("https://%s/notifications", s.config.Domain),
		LinkLabel: "Responder",
	})
}

func (s *service) SendTransferOfferEmail(ctx context.Context, toEmail, playerName, teamName string) error {
	return s.sendEmail(toEmail, "Proposta de transferência - Pelada Hub", emailData{
		Title:     "Proposta de transferência",
		Name:      playerName,
		Body:      fmt.Sprintf("%s quer você no elenco. Veja a proposta no mercado.", teamName),
		Link:      fmt.Sprintf("https://%s/market", s.config.Domain),
		LinkLabel: "Ver proposta",
	})
}
