package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendVerificationEmail(ctx context.Context, toEmail, fullName, verificationToken string) error {
	args := m.Called(ctx, toEmail, fullName, verificationToken)
	return args.Error(0)
}

func (m *EmailService) SendPasswordResetEmail(ctx context.Context, toEmail, fullName, resetToken string) error {
	args := m.Called(ctx, toEmail, fullName, resetToken)
	return args.Error(0)
}

func (m *EmailService) SendMatchInviteEmail(ctx context.Context, toEmail, recipientName, challengerTeam string, date time.Time) error {
	args := m.Called(ctx, toEmail, recipientName, challengerTeam, date)
	return args.Error(0)
}

func (m *EmailService) SendCounterProposalEmail(ctx context.Context, toEmail, recipientName, proposingTeam string, newDate time.Time) error {
	args := m.Called(ctx, toEmail, recipientName, proposingTeam, newDate)
	return args.Error(0)
}

func (m *EmailService) SendTransferOfferEmail(ctx context.Context, toEmail, playerName, teamName string) error {
	args := m.Called(ctx, toEmail, playerName, teamName)
	return args.Error(0)
}
