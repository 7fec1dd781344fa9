package match

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pelada-hub/internal/domain"
	"pelada-hub/internal/pkg/i18n"
	"pelada-hub/internal/pkg/logger"
	"pelada-hub/internal/repository"
	"pelada-hub/internal/service/email"
)

type Service interface {
	Create(ctx context.Context, actorUserID uuid.UUID, input domain.CreateMatchInput) (*domain.Match, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Match, error)
	List(ctx context.Context, filter domain.MatchListFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Match], error)
	Accept(ctx context.Context, actorUserID, matchID, actingTeamID uuid.UUID) (*domain.Match, error)
	Decline(ctx context.Context, actorUserID, matchID, actingTeamID uuid.UUID) (*domain.Match, error)
	ProposeCounter(ctx context.Context, actorUserID, matchID uuid.UUID, input domain.CounterProposalInput) (*domain.Match, error)
	RecordResult(ctx context.Context, actorUserID, matchID, actingTeamID uuid.UUID, input domain.RecordResultInput) (*domain.Match, error)
}

type service struct {
	matchRepo repository.MatchRepository
	teamRepo  repository.TeamRepository
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
	auditRepo repository.AuditLogRepository
	emailSvc  email.Service
	redis     *redis.Client
}

func NewService(
	matchRepo repository.MatchRepository,
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
	auditRepo repository.AuditLogRepository,
	emailSvc email.Service,
	redis *redis.Client,
) Service {
	return &service{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		userRepo:  userRepo,
		notifRepo: notifRepo,
		auditRepo: auditRepo,
		emailSvc:  emailSvc,
		redis:     redis,
	}
}

func (s *service) Create(ctx context.Context, actorUserID uuid.UUID, input domain.CreateMatchInput) (*domain.Match, error) {
	if input.Status != domain.MatchPending && input.Status != domain.MatchScheduled {
		return nil, domain.ErrInvalidTransition
	}

	home, err := s.teamRepo.GetByID(ctx, input.HomeTeamID)
	if err != nil {
		return nil, err
	}
	if home == nil {
		return nil, domain.ErrTeamNotFound
	}
	if home.OwnerID != actorUserID {
		return nil, domain.ErrNotTeamOwner
	}

	m := &domain.Match{
		ID:              uuid.New(),
		Date:            input.Date,
		LocationName:    input.LocationName,
		CourtID:         input.CourtID,
		HomeTeamID:      input.HomeTeamID,
		AwayTeamID:      input.AwayTeamID,
		AwayTeamName:    input.AwayTeamName,
		Status:          input.Status,
		IsVerified:      false,
		UpdatedByTeamID: input.HomeTeamID,
	}

	// Informal opponents are not on the platform: the match is stored but
	// nobody can be invited and the workflow stops here.
	var notif *domain.Notification
	var awayOwner *domain.User
	if input.AwayTeamID != nil {
		away, err := s.teamRepo.GetByID(ctx, *input.AwayTeamID)
		if err != nil {
			return nil, err
		}
		if away == nil {
			return nil, domain.ErrTeamNotFound
		}

		homeID := home.ID
		notif = &domain.Notification{
			ID:           uuid.New(),
			UserID:       away.OwnerID,
			Type:         domain.NotifMatchInvite,
			Title:        i18n.T("notif.match_invite.title"),
			Message:      i18n.Tf("notif.match_invite.message", home.Name, m.Date.Format("02/01 15:04")),
			RelatedID:    &home.ID,
			RelatedImage: home.CrestURL,
			ActionData: domain.MatchActionData{
				MatchID: m.ID,
				TeamID:  &homeID,
			}.Marshal(),
		}

		awayOwner, _ = s.userRepo.GetByID(ctx, away.OwnerID)
	}

	if err := s.matchRepo.Create(ctx, m, notif); err != nil {
		return nil, err
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actorUserID,
		Action:     "CREATE_MATCH",
		EntityType: "MATCH",
		EntityID:   m.ID,
		NewValue:   map[string]string{"status": string(m.Status)},
	})

	if s.emailSvc != nil && awayOwner != nil && awayOwner.Email != "" {
		go func(toEmail, toName, homeName string, date time.Time) {
			ctx := context.Background()
			_ = s.emailSvc.SendMatchInviteEmail(ctx, toEmail, toName, homeName, date)
		}(awayOwner.Email, awayOwner.FullName, home.Name, m.Date)
	}

	logger.L().WithField("match_id", m.ID).WithField("home_team", home.Name).Info("match created")

	return m, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMatchNotFound
	}
	return m, nil
}

func (s *service) List(ctx context.Context, filter domain.MatchListFilter, params domain.PaginationParams) (domain.PaginatedResponse[domain.Match], error) {
	matches, total, err := s.matchRepo.List(ctx, filter, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Match]{}, err
	}
	return domain.NewPaginatedResponse(matches, params.Page, params.PageSize, total), nil
}

func (s *service) Accept(ctx context.Context, actorUserID, matchID, actingTeamID uuid.UUID) (*domain.Match, error) {
	m, err := s.loadForResponse(ctx, actorUserID, matchID, actingTeamID)
	if err != nil {
		return nil, err
	}

	prev := m.Status
	expected := m.Version
	m.Status = domain.MatchScheduled
	m.IsVerified = true
	m.UpdatedByTeamID = actingTeamID

	ok, err := s.matchRepo.CompareAndSwap(ctx, m, expected, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.swapFailure(ctx, matchID)
	}

	s.markActionNotificationRead(ctx, actorUserID, matchID)

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actorUserID,
		Action:     "ACCEPT_MATCH",
		EntityType: "MATCH",
		EntityID:   m.ID,
		OldValue:   map[string]string{"status": string(prev)},
		NewValue:   map[string]string{"status": string(domain.MatchScheduled)},
	})

	return m, nil
}

func (s *service) Decline(ctx context.Context, actorUserID, matchID, actingTeamID uuid.UUID) (*domain.Match, error) {
	m, err := s.loadForResponse(ctx, actorUserID, matchID, actingTeamID)
	if err != nil {
		return nil, err
	}

	prev := m.Status
	expected := m.Version
	m.Status = domain.MatchCancelled
	m.IsVerified = false
	m.UpdatedByTeamID = actingTeamID

	ok, err := s.matchRepo.CompareAndSwap(ctx, m, expected, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.swapFailure(ctx, matchID)
	}

	s.markActionNotificationRead(ctx, actorUserID, matchID)

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actorUserID,
		Action:     "DECLINE_MATCH",
		EntityType: "MATCH",
		EntityID:   m.ID,
		OldValue:   map[string]string{"status": string(prev)},
		NewValue:   map[string]string{"status": string(domain.MatchCancelled)},
	})

	return m, nil
}

func (s *service) ProposeCounter(ctx context.Context, actorUserID, matchID uuid.UUID, input domain.CounterProposalInput) (*domain.Match, error) {
	m, err := s.loadForResponse(ctx, actorUserID, matchID, input.ProposingTeamID)
	if err != nil {
		return nil, err
	}

	if input.NewDate.IsZero() || !input.NewDate.After(time.Now()) {
		return nil, domain.ErrInvalidTransition
	}
	if input.NewDate.Equal(m.Date) {
		return nil, domain.ErrInvalidTransition
	}

	recipientTeamID, err := OtherParty(m, input.ProposingTeamID)
	if err != nil {
		return nil, err
	}

	recipientTeam, err := s.teamRepo.GetByID(ctx, recipientTeamID)
	if err != nil {
		return nil, err
	}
	if recipientTeam == nil {
		return nil, domain.ErrTeamNotFound
	}

	proposingTeam, err := s.teamRepo.GetByID(ctx, input.ProposingTeamID)
	if err != nil {
		return nil, err
	}
	if proposingTeam == nil {
		return nil, domain.ErrTeamNotFound
	}

	newDate := input.NewDate
	notif := &domain.Notification{
		ID:           uuid.New(),
		UserID:       recipientTeam.OwnerID,
		Type:         domain.NotifMatchUpdate,
		Title:        i18n.T("notif.match_update.title"),
		Message:      i18n.Tf("notif.match_update.message", proposingTeam.Name, newDate.Format("02/01 15:04")),
		RelatedID:    &proposingTeam.ID,
		RelatedImage: proposingTeam.CrestURL,
		ActionData: domain.MatchActionData{
			MatchID:      m.ID,
			ProposedDate: &newDate,
		}.Marshal(),
	}

	prevStatus := m.Status
	expected := m.Version
	m.Date = newDate
	m.Status = domain.MatchPending
	m.UpdatedByTeamID = input.ProposingTeamID

	ok, err := s.matchRepo.CompareAndSwap(ctx, m, expected, notif)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.swapFailure(ctx, matchID)
	}

	s.markActionNotificationRead(ctx, actorUserID, matchID)

	if s.emailSvc != nil {
		if recipient, err := s.userRepo.GetByID(ctx, recipientTeam.OwnerID); err == nil && recipient != nil && recipient.Email != "" {
			go func(toEmail, toName, proposingName string, date time.Time) {
				ctx := context.Background()
				_ = s.emailSvc.SendCounterProposalEmail(ctx, toEmail, toName, proposingName, date)
			}(recipient.Email, recipient.FullName, proposingTeam.Name, newDate)
		}
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actorUserID,
		Action:     "COUNTER_PROPOSE_MATCH",
		EntityType: "MATCH",
		EntityID:   m.ID,
		OldValue:   map[string]string{"status": string(prevStatus)},
		NewValue:   map[string]string{"status": string(domain.MatchPending), "date": newDate.Format(time.RFC3339)},
	})

	return m, nil
}

func (s *service) RecordResult(ctx context.Context, actorUserID, matchID, actingTeamID uuid.UUID, input domain.RecordResultInput) (*domain.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMatchNotFound
	}

	if m.Status != domain.MatchScheduled {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.requireOwner(ctx, actorUserID, actingTeamID); err != nil {
		return nil, err
	}
	if !isParticipant(m, actingTeamID) {
		return nil, domain.ErrNotMatchParticipant
	}

	expected := m.Version
	homeScore := input.HomeScore
	awayScore := input.AwayScore
	m.Status = domain.MatchFinished
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	m.UpdatedByTeamID = actingTeamID

	goals := make([]domain.Goal, 0, len(input.Goals))
	for _, g := range input.Goals {
		goals = append(goals, domain.Goal{
			ID:       uuid.New(),
			MatchID:  m.ID,
			TeamSide: g.TeamSide,
			PlayerID: g.PlayerID,
			Scorer:   g.Scorer,
			Minute:   g.Minute,
		})
	}

	var notif *domain.Notification
	if otherID, err := OtherParty(m, actingTeamID); err == nil {
		if other, err := s.teamRepo.GetByID(ctx, otherID); err == nil && other != nil {
			acting, _ := s.teamRepo.GetByID(ctx, actingTeamID)
			actingName := m.AwayTeamName
			if acting != nil {
				actingName = acting.Name
			}
			notif = &domain.Notification{
				ID:        uuid.New(),
				UserID:    other.OwnerID,
				Type:      domain.NotifMatchResult,
				Title:     i18n.T("notif.match_result.title"),
				Message:   i18n.Tf("notif.match_result.message", actingName, homeScore, awayScore),
				RelatedID: &actingTeamID,
				ActionData: domain.MatchActionData{
					MatchID: m.ID,
				}.Marshal(),
			}
		}
	}

	ok, err := s.matchRepo.SetResult(ctx, m, goals, expected, notif)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.swapFailure(ctx, matchID)
	}
	m.Goals = goals

	// Standings and territory views aggregate finished matches.
	if s.redis != nil {
		_ = s.redis.Del(ctx, "rankings:table", "territory:map").Err()
	}

	_ = repository.CreateAuditLog(s.auditRepo, ctx, domain.CreateAuditLogInput{
		UserID:     actorUserID,
		Action:     "RECORD_RESULT",
		EntityType: "MATCH",
		EntityID:   m.ID,
		OldValue:   map[string]string{"status": string(domain.MatchScheduled)},
		NewValue:   map[string]string{"status": string(domain.MatchFinished)},
	})

	return m, nil
}

// loadForResponse fetches the match and runs every precondition shared by
// accept/decline/counter: the match exists and is still open, the acting
// team belongs to the actor, is on the match, and it is that side's turn.
func (s *service) loadForResponse(ctx context.Context, actorUserID, matchID, actingTeamID uuid.UUID) (*domain.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMatchNotFound
	}

	if !canRespond(m) {
		return nil, domain.ErrInvalidTransition
	}
	if !isParticipant(m, actingTeamID) {
		return nil, domain.ErrNotMatchParticipant
	}
	if !isRespondersTurn(m, actingTeamID) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.requireOwner(ctx, actorUserID, actingTeamID); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *service) requireOwner(ctx context.Context, actorUserID, teamID uuid.UUID) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return domain.ErrTeamNotFound
	}
	if team.OwnerID != actorUserID {
		return domain.ErrNotTeamOwner
	}
	return nil
}

// swapFailure distinguishes a vanished match from a lost version race.
func (s *service) swapFailure(ctx context.Context, matchID uuid.UUID) error {
	current, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrMatchNotFound
	}
	return domain.ErrMatchConflict
}

func (s *service) markActionNotificationRead(ctx context.Context, actorUserID, matchID uuid.UUID) {
	notif, err := s.notifRepo.GetLatestForMatch(ctx, actorUserID, matchID)
	if err != nil || notif == nil {
		return
	}
	if err := s.notifRepo.MarkAsRead(ctx, notif.ID); err != nil {
		logger.L().WithField("notification_id", notif.ID).WithError(err).Warn("failed to mark notification read")
	}
}
