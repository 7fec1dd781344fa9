package unit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/service/match"
	"pelada-hub/tests/mocks"
)

type matchFixture struct {
	matchRepo *mocks.MatchRepository
	teamRepo  *mocks.TeamRepository
	userRepo  *mocks.UserRepository
	notifRepo *mocks.NotificationRepository
	auditRepo *mocks.AuditLogRepository
	svc       match.Service

	homeOwnerID uuid.UUID
	awayOwnerID uuid.UUID
	home        *domain.Team
	away        *domain.Team
}

func newMatchFixture() *matchFixture {
	f := &matchFixture{
		matchRepo:   new(mocks.MatchRepository),
		teamRepo:    new(mocks.TeamRepository),
		userRepo:    new(mocks.UserRepository),
		notifRepo:   new(mocks.NotificationRepository),
		auditRepo:   new(mocks.AuditLogRepository),
		homeOwnerID: uuid.New(),
		awayOwnerID: uuid.New(),
	}
	f.home = &domain.Team{ID: uuid.New(), Name: "Unidos da Vila", OwnerID: f.homeOwnerID}
	f.away = &domain.Team{ID: uuid.New(), Name: "Galáticos FC", OwnerID: f.awayOwnerID}
	f.svc = match.NewService(f.matchRepo, f.teamRepo, f.userRepo, f.notifRepo, f.auditRepo, nil, nil)
	return f
}

// pendingMatch returns a match awaiting a response from the away side:
// home made the last proposal.
func (f *matchFixture) pendingMatch() *domain.Match {
	awayID := f.away.ID
	return &domain.Match{
		ID:              uuid.New(),
		Date:            time.Now().Add(72 * time.Hour),
		LocationName:    "Quadra do Parque",
		HomeTeamID:      f.home.ID,
		AwayTeamID:      &awayID,
		AwayTeamName:    f.away.Name,
		Status:          domain.MatchPending,
		UpdatedByTeamID: f.home.ID,
		Version:         1,
	}
}

func (f *matchFixture) assertExpectations(t *testing.T) {
	f.matchRepo.AssertExpectations(t)
	f.teamRepo.AssertExpectations(t)
	f.userRepo.AssertExpectations(t)
	f.notifRepo.AssertExpectations(t)
	f.auditRepo.AssertExpectations(t)
}

func TestMatchService_Create(t *testing.T) {
	ctx := context.Background()
	date := time.Now().Add(48 * time.Hour)

	t.Run("invite on platform opponent", func(t *testing.T) {
		f := newMatchFixture()
		awayID := f.away.ID

		f.teamRepo.On("GetByID", ctx, f.home.ID).Return(f.home, nil).Once()
		f.teamRepo.On("GetByID", ctx, awayID).Return(f.away, nil).Once()
		f.userRepo.On("GetByID", ctx, f.awayOwnerID).
			Return(&domain.User{ID: f.awayOwnerID, FullName: "Rafa", Email: ""}, nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		var capturedNotif *domain.Notification
		var capturedMatch *domain.Match
		f.matchRepo.On("Create", ctx, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				capturedMatch = args.Get(1).(*domain.Match)
				capturedNotif = args.Get(2).(*domain.Notification)
			}).
			Return(nil).Once()

		created, err := f.svc.Create(ctx, f.homeOwnerID, domain.CreateMatchInput{
			Date:         date,
			LocationName: "Quadra do Parque",
			HomeTeamID:   f.home.ID,
			AwayTeamID:   &awayID,
			AwayTeamName: f.away.Name,
			Status:       domain.MatchPending,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.MatchPending, created.Status)
		assert.False(t, created.IsVerified)
		assert.Equal(t, f.home.ID, created.UpdatedByTeamID)

		assert.NotNil(t, capturedNotif)
		assert.Equal(t, f.awayOwnerID, capturedNotif.UserID)
		assert.Equal(t, domain.NotifMatchInvite, capturedNotif.Type)

		var action domain.MatchActionData
		assert.NoError(t, json.Unmarshal(capturedNotif.ActionData, &action))
		assert.Equal(t, capturedMatch.ID, action.MatchID)
		assert.NotNil(t, action.TeamID)
		assert.Equal(t, f.home.ID, *action.TeamID)
		assert.Nil(t, action.ProposedDate)

		f.assertExpectations(t)
	})

	t.Run("informal opponent gets no invite", func(t *testing.T) {
		f := newMatchFixture()

		f.teamRepo.On("GetByID", ctx, f.home.ID).Return(f.home, nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.matchRepo.On("Create", ctx, mock.Anything, (*domain.Notification)(nil)).Return(nil).Once()

		created, err := f.svc.Create(ctx, f.homeOwnerID, domain.CreateMatchInput{
			Date:         date,
			LocationName: "Campo do bairro",
			HomeTeamID:   f.home.ID,
			AwayTeamName: "Time do Zé",
			Status:       domain.MatchScheduled,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.MatchScheduled, created.Status)
		f.userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("only the home owner may create", func(t *testing.T) {
		f := newMatchFixture()
		f.teamRepo.On("GetByID", ctx, f.home.ID).Return(f.home, nil).Once()

		_, err := f.svc.Create(ctx, uuid.New(), domain.CreateMatchInput{
			Date:         date,
			LocationName: "Quadra",
			HomeTeamID:   f.home.ID,
			AwayTeamName: "Rivais",
			Status:       domain.MatchPending,
		})

		assert.ErrorIs(t, err, domain.ErrNotTeamOwner)
		f.matchRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("terminal initial status is rejected", func(t *testing.T) {
		f := newMatchFixture()

		_, err := f.svc.Create(ctx, f.homeOwnerID, domain.CreateMatchInput{
			Date:         date,
			LocationName: "Quadra",
			HomeTeamID:   f.home.ID,
			AwayTeamName: "Rivais",
			Status:       domain.MatchFinished,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestMatchService_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("invited side accepts a pending match", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()
		f.teamRepo.On("GetByID", ctx, f.away.ID).Return(f.away, nil).Once()
		f.matchRepo.On("CompareAndSwap", ctx, m, 1, (*domain.Notification)(nil)).Return(true, nil).Once()
		f.notifRepo.On("GetLatestForMatch", ctx, f.awayOwnerID, m.ID).Return(nil, nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		updated, err := f.svc.Accept(ctx, f.awayOwnerID, m.ID, f.away.ID)

		assert.NoError(t, err)
		assert.Equal(t, domain.MatchScheduled, updated.Status)
		assert.True(t, updated.IsVerified)
		assert.Equal(t, f.away.ID, updated.UpdatedByTeamID)
		f.assertExpectations(t)
	})

	t.Run("accept from an unverified scheduled match", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()
		m.Status = domain.MatchScheduled
		m.IsVerified = false

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()
		f.teamRepo.On("GetByID", ctx, f.away.ID).Return(f.away, nil).Once()
		f.matchRepo.On("CompareAndSwap", ctx, m, 1, (*domain.Notification)(nil)).Return(true, nil).Once()
		f.notifRepo.On("GetLatestForMatch", ctx, f.awayOwnerID, m.ID).Return(nil, nil).Once()

		var capturedAudit *domain.AuditLog
		f.auditRepo.On("Create", ctx, mock.Anything).
			Run(func(args mock.Arguments) {
				capturedAudit = args.Get(1).(*domain.AuditLog)
			}).
			Return(nil).Once()

		updated, err := f.svc.Accept(ctx, f.awayOwnerID, m.ID, f.away.ID)

		assert.NoError(t, err)
		assert.True(t, updated.IsVerified)

		var oldValue map[string]string
		assert.NoError(t, json.Unmarshal(capturedAudit.OldValue, &oldValue))
		assert.Equal(t, string(domain.MatchScheduled), oldValue["status"])
		f.assertExpectations(t)
	})

	t.Run("acting on a cancelled match", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()
		m.Status = domain.MatchCancelled

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()

		_, err := f.svc.Accept(ctx, f.awayOwnerID, m.ID, f.away.ID)

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		f.matchRepo.AssertNotCalled(t, "CompareAndSwap", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second accept on a verified match", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()
		m.Status = domain.MatchScheduled
		m.IsVerified = true
		m.UpdatedByTeamID = f.away.ID

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()

		_, err := f.svc.Accept(ctx, f.homeOwnerID, m.ID, f.home.ID)

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("proposer cannot answer its own proposal", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch() // home proposed last

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()

		_, err := f.svc.Accept(ctx, f.homeOwnerID, m.ID, f.home.ID)

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("team outside the match", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()

		_, err := f.svc.Accept(ctx, uuid.New(), m.ID, uuid.New())

		assert.ErrorIs(t, err, domain.ErrNotMatchParticipant)
	})

	t.Run("actor does not own the acting team", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()
		f.teamRepo.On("GetByID", ctx, f.away.ID).Return(f.away, nil).Once()

		_, err := f.svc.Accept(ctx, uuid.New(), m.ID, f.away.ID)

		assert.ErrorIs(t, err, domain.ErrNotTeamOwner)
	})

	t.Run("lost version race", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Twice()
		f.teamRepo.On("GetByID", ctx, f.away.ID).Return(f.away, nil).Once()
		f.matchRepo.On("CompareAndSwap", ctx, m, 1, (*domain.Notification)(nil)).Return(false, nil).Once()

		_, err := f.svc.Accept(ctx, f.awayOwnerID, m.ID, f.away.ID)

		assert.ErrorIs(t, err, domain.ErrMatchConflict)
		f.assertExpectations(t)
	})

	t.Run("match vanished during the race", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()
		f.teamRepo.On("GetByID", ctx, f.away.ID).Return(f.away, nil).Once()
		f.matchRepo.On("CompareAndSwap", ctx, m, 1, (*domain.Notification)(nil)).Return(false, nil).Once()
		f.matchRepo.On("GetByID", ctx, m.ID).Return(nil, nil).Once()

		_, err := f.svc.Accept(ctx, f.awayOwnerID, m.ID, f.away.ID)

		assert.ErrorIs(t, err, domain.ErrMatchNotFound)
	})

	t.Run("unknown match", func(t *testing.T) {
		f := newMatchFixture()
		id := uuid.New()

		f.matchRepo.On("GetByID", ctx, id).Return(nil, nil).Once()

		_, err := f.svc.Accept(ctx, f.awayOwnerID, id, f.away.ID)

		assert.ErrorIs(t, err, domain.ErrMatchNotFound)
	})
}

func TestMatchService_Decline(t *testing.T) {
	ctx := context.Background()

	t.Run("decline cancels the match", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()
		f.teamRepo.On("GetByID", ctx, f.away.ID).Return(f.away, nil).Once()
		f.matchRepo.On("CompareAndSwap", ctx, m, 1, (*domain.Notification)(nil)).Return(true, nil).Once()
		f.notifRepo.On("GetLatestForMatch", ctx, f.awayOwnerID, m.ID).Return(nil, nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		updated, err := f.svc.Decline(ctx, f.awayOwnerID, m.ID, f.away.ID)

		assert.NoError(t, err)
		assert.Equal(t, domain.MatchCancelled, updated.Status)
		assert.False(t, updated.IsVerified)
		f.assertExpectations(t)
	})

	t.Run("declining twice", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()
		m.Status = domain.MatchCancelled
		m.UpdatedByTeamID = f.away.ID

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()

		_, err := f.svc.Decline(ctx, f.homeOwnerID, m.ID, f.home.ID)

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		f.matchRepo.AssertNotCalled(t, "CompareAndSwap", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("marks the triggering notification read", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()
		notifID := uuid.New()

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()
		f.teamRepo.On("GetByID", ctx, f.away.ID).Return(f.away, nil).Once()
		f.matchRepo.On("CompareAndSwap", ctx, m, 1, (*domain.Notification)(nil)).Return(true, nil).Once()
		f.notifRepo.On("GetLatestForMatch", ctx, f.awayOwnerID, m.ID).
			Return(&domain.Notification{ID: notifID, UserID: f.awayOwnerID}, nil).Once()
		f.notifRepo.On("MarkAsRead", ctx, notifID).Return(nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, err := f.svc.Decline(ctx, f.awayOwnerID, m.ID, f.away.ID)

		assert.NoError(t, err)
		f.assertExpectations(t)
	})
}

func TestMatchService_ProposeCounter(t *testing.T) {
	ctx := context.Background()

	t.Run("away counters and home is notified", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()
		newDate := time.Now().Add(120 * time.Hour).Truncate(time.Second)

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()
		f.teamRepo.On("GetByID", ctx, f.away.ID).Return(f.away, nil).Twice()
		f.teamRepo.On("GetByID", ctx, f.home.ID).Return(f.home, nil).Once()
		f.notifRepo.On("GetLatestForMatch", ctx, f.awayOwnerID, m.ID).Return(nil, nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		var capturedNotif *domain.Notification
		f.matchRepo.On("CompareAndSwap", ctx, m, 1, mock.Anything).
			Run(func(args mock.Arguments) {
				capturedNotif = args.Get(3).(*domain.Notification)
			}).
			Return(true, nil).Once()

		updated, err := f.svc.ProposeCounter(ctx, f.awayOwnerID, m.ID, domain.CounterProposalInput{
			NewDate:         newDate,
			ProposingTeamID: f.away.ID,
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.MatchPending, updated.Status)
		assert.True(t, updated.Date.Equal(newDate))
		assert.Equal(t, f.away.ID, updated.UpdatedByTeamID)

		assert.NotNil(t, capturedNotif)
		assert.Equal(t, f.homeOwnerID, capturedNotif.UserID)
		assert.Equal(t, domain.NotifMatchUpdate, capturedNotif.Type)

		var action domain.MatchActionData
		assert.NoError(t, json.Unmarshal(capturedNotif.ActionData, &action))
		assert.Equal(t, m.ID, action.MatchID)
		assert.NotNil(t, action.ProposedDate)
		assert.True(t, action.ProposedDate.Equal(newDate))

		f.assertExpectations(t)
	})

	t.Run("home counters back and away is notified", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()
		m.UpdatedByTeamID = f.away.ID // away proposed last, home's turn
		newDate := time.Now().Add(96 * time.Hour)

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()
		f.teamRepo.On("GetByID", ctx, f.home.ID).Return(f.home, nil).Twice()
		f.teamRepo.On("GetByID", ctx, f.away.ID).Return(f.away, nil).Once()
		f.notifRepo.On("GetLatestForMatch", ctx, f.homeOwnerID, m.ID).Return(nil, nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		var capturedNotif *domain.Notification
		f.matchRepo.On("CompareAndSwap", ctx, m, 1, mock.Anything).
			Run(func(args mock.Arguments) {
				capturedNotif = args.Get(3).(*domain.Notification)
			}).
			Return(true, nil).Once()

		updated, err := f.svc.ProposeCounter(ctx, f.homeOwnerID, m.ID, domain.CounterProposalInput{
			NewDate:         newDate,
			ProposingTeamID: f.home.ID,
		})

		assert.NoError(t, err)
		assert.Equal(t, f.home.ID, updated.UpdatedByTeamID)
		assert.Equal(t, f.awayOwnerID, capturedNotif.UserID)
		f.assertExpectations(t)
	})

	t.Run("past date is rejected", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()
		f.teamRepo.On("GetByID", ctx, f.away.ID).Return(f.away, nil).Once()

		_, err := f.svc.ProposeCounter(ctx, f.awayOwnerID, m.ID, domain.CounterProposalInput{
			NewDate:         time.Now().Add(-24 * time.Hour),
			ProposingTeamID: f.away.ID,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		f.matchRepo.AssertNotCalled(t, "CompareAndSwap", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("same date is rejected", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()
		f.teamRepo.On("GetByID", ctx, f.away.ID).Return(f.away, nil).Once()

		_, err := f.svc.ProposeCounter(ctx, f.awayOwnerID, m.ID, domain.CounterProposalInput{
			NewDate:         m.Date,
			ProposingTeamID: f.away.ID,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})
}

func TestMatchService_RecordResult(t *testing.T) {
	ctx := context.Background()

	t.Run("result from a scheduled match", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()
		m.Status = domain.MatchScheduled
		m.IsVerified = true
		m.UpdatedByTeamID = f.away.ID

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()
		f.teamRepo.On("GetByID", ctx, f.home.ID).Return(f.home, nil).Twice()
		f.teamRepo.On("GetByID", ctx, f.away.ID).Return(f.away, nil).Once()
		f.auditRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		var capturedGoals []domain.Goal
		var capturedNotif *domain.Notification
		f.matchRepo.On("SetResult", ctx, m, mock.Anything, 1, mock.Anything).
			Run(func(args mock.Arguments) {
				capturedGoals = args.Get(2).([]domain.Goal)
				capturedNotif = args.Get(4).(*domain.Notification)
			}).
			Return(true, nil).Once()

		updated, err := f.svc.RecordResult(ctx, f.homeOwnerID, m.ID, f.home.ID, domain.RecordResultInput{
			HomeScore: 3,
			AwayScore: 1,
			Goals: []domain.GoalInput{
				{TeamSide: "home", Scorer: "Léo"},
				{TeamSide: "home", Scorer: "Léo"},
				{TeamSide: "home", Scorer: "Dudu"},
				{TeamSide: "away", Scorer: "Pedrão"},
			},
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.MatchFinished, updated.Status)
		assert.Equal(t, 3, *updated.HomeScore)
		assert.Equal(t, 1, *updated.AwayScore)
		assert.Len(t, capturedGoals, 4)
		assert.Len(t, updated.Goals, 4)

		assert.NotNil(t, capturedNotif)
		assert.Equal(t, f.awayOwnerID, capturedNotif.UserID)
		assert.Equal(t, domain.NotifMatchResult, capturedNotif.Type)

		f.assertExpectations(t)
	})

	t.Run("no result before the match is agreed", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()

		_, err := f.svc.RecordResult(ctx, f.homeOwnerID, m.ID, f.home.ID, domain.RecordResultInput{
			HomeScore: 2, AwayScore: 2,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		f.matchRepo.AssertNotCalled(t, "SetResult", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no second result", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()
		m.Status = domain.MatchFinished

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()

		_, err := f.svc.RecordResult(ctx, f.homeOwnerID, m.ID, f.home.ID, domain.RecordResultInput{
			HomeScore: 1, AwayScore: 0,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("outsider cannot record", func(t *testing.T) {
		f := newMatchFixture()
		m := f.pendingMatch()
		m.Status = domain.MatchScheduled
		stranger := &domain.Team{ID: uuid.New(), Name: "Penetras", OwnerID: uuid.New()}

		f.matchRepo.On("GetByID", ctx, m.ID).Return(m, nil).Once()
		f.teamRepo.On("GetByID", ctx, stranger.ID).Return(stranger, nil).Once()

		_, err := f.svc.RecordResult(ctx, stranger.OwnerID, m.ID, stranger.ID, domain.RecordResultInput{
			HomeScore: 1, AwayScore: 1,
		})

		assert.ErrorIs(t, err, domain.ErrNotMatchParticipant)
	})
}
