package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"tournament-service/internal/lock"
	"tournament-service/internal/model"
	"tournament-service/internal/repository"
)

// TeamRepository описывает контракт репозитория команд и членств для бизнес-слоя.
type TeamRepository interface {
	CreateTeam(ctx context.Context, t model.Team) (model.Team, error)
	GetTeam(ctx context.Context, teamID string) (model.Team, error)
	GetTeamByInviteCode(ctx context.Context, code string) (model.Team, error)
	InviteCodeExists(ctx context.Context, code string) (bool, error)
	UpdateTeam(ctx context.Context, teamID string, upd model.TeamUpdate) (model.Team, error)
	DeleteTeam(ctx context.Context, teamID string) error

	GetMembership(ctx context.Context, teamID, userID string) (model.Membership, error)
	CreateMembership(ctx context.Context, m model.Membership) (model.Membership, error)
	AcceptMembership(ctx context.Context, teamID, userID string, memberType model.MemberType, maxMembers int) (model.Membership, error)
	DeletePendingMembership(ctx context.Context, teamID, userID string, memberType model.MemberType) error
	DeleteAcceptedMembership(ctx context.Context, teamID, userID string) error
	ListMemberships(ctx context.Context, teamID string) ([]model.Membership, error)
	ListTeamsForUser(ctx context.Context, userID string) ([]model.Team, error)
	ListPendingInvites(ctx context.Context, userID string) ([]model.PendingInvite, error)
}

const (
	minTeamName        = 3
	maxTeamName        = 50
	inviteCodeAttempts = 10
)

// TeamService ведёт жизненный цикл команд и машину состояний членства.
// Лидер хранится в Team.LeaderID и считается принятым участником; строк членства у него нет.
type TeamService struct {
	teams      TeamRepository
	users      UserRepository
	locker     Locker
	codeLength int
}

// NewTeamService создаёт новый сервис для операций над командами.
func NewTeamService(teams TeamRepository, users UserRepository, locker Locker, codeLength int) *TeamService {
	if codeLength <= 0 {
		codeLength = 8
	}
	return &TeamService{
		teams:      teams,
		users:      users,
		locker:     locker,
		codeLength: codeLength,
	}
}

// CreateTeam создаёт команду с уникальным инвайт-кодом. Создатель становится лидером.
func (s *TeamService) CreateTeam(ctx context.Context, leaderID, teamName string, teamType model.TeamType) (model.Team, error) {
	if leaderID == "" {
		return model.Team{}, ErrBadRequest("leader_id is required")
	}
	name, err := validateTeamName(teamName)
	if err != nil {
		return model.Team{}, err
	}
	if !teamType.Valid() {
		return model.Team{}, ErrBadRequest("team_type must be duo or squad")
	}

	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code, err := s.freeInviteCode(ctx)
		if err != nil {
			return model.Team{}, err
		}
		if code == "" {
			continue
		}

		team, err := s.teams.CreateTeam(ctx, model.Team{
			TeamID:     uuid.NewString(),
			TeamName:   name,
			TeamType:   teamType,
			LeaderID:   leaderID,
			InviteCode: code,
		})
		if errors.Is(err, repository.ErrInviteCodeTaken) {
			continue
		}
		if err != nil {
			return model.Team{}, ErrInternal("failed to create team", err)
		}
		return team, nil
	}
	return model.Team{}, ErrInternal("failed to create team", errors.New("could not allocate a unique invite code"))
}

// freeInviteCode возвращает свободный код или пустую строку при коллизии.
func (s *TeamService) freeInviteCode(ctx context.Context) (string, error) {
	code, err := newInviteCode(s.codeLength)
	if err != nil {
		return "", ErrInternal("failed to generate invite code", err)
	}
	taken, err := s.teams.InviteCodeExists(ctx, code)
	if err != nil {
		return "", ErrInternal("failed to check invite code", err)
	}
	if taken {
		return "", nil
	}
	return code, nil
}

// RequestJoin создаёт заявку на вступление по инвайт-коду. Вместимость здесь не проверяется.
func (s *TeamService) RequestJoin(ctx context.Context, userID, inviteCode string) (model.Membership, error) {
	code := strings.TrimSpace(inviteCode)
	if userID == "" || code == "" {
		return model.Membership{}, ErrBadRequest("user_id and invite_code are required")
	}
	team, err := s.teams.GetTeamByInviteCode(ctx, code)
	if err != nil {
		return model.Membership{}, mapTeamErr(err, "failed to resolve invite code")
	}
	return s.createPending(ctx, team, userID, model.MemberTypeJoinRequest)
}

// InviteByGameID приглашает пользователя по игровому ID. Только лидер.
func (s *TeamService) InviteByGameID(ctx context.Context, teamID, gameID, requesterID string) (model.Membership, error) {
	if gameID == "" {
		return model.Membership{}, ErrBadRequest("game_id is required")
	}
	team, err := s.leaderTeam(ctx, teamID, requesterID)
	if err != nil {
		return model.Membership{}, err
	}
	user, err := s.users.GetByGameID(ctx, strings.TrimSpace(gameID))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.Membership{}, ErrUserNotFound
		}
		return model.Membership{}, ErrInternal("failed to resolve game id", err)
	}
	return s.createPending(ctx, team, user.UserID, model.MemberTypeInvite)
}

func (s *TeamService) createPending(ctx context.Context, team model.Team, userID string, memberType model.MemberType) (model.Membership, error) {
	if team.LeaderID == userID {
		return model.Membership{}, ErrAlreadyMember
	}
	_, err := s.teams.GetMembership(ctx, team.TeamID, userID)
	switch {
	case err == nil:
		return model.Membership{}, ErrAlreadyMember
	case !errors.Is(err, repository.ErrMembershipNotFound):
		return model.Membership{}, ErrInternal("failed to get membership", err)
	}

	m, err := s.teams.CreateMembership(ctx, model.Membership{
		TeamID:     team.TeamID,
		UserID:     userID,
		Status:     model.MembershipPending,
		MemberType: memberType,
	})
	if err != nil {
		return model.Membership{}, mapTeamErr(err, "failed to create membership")
	}
	return m, nil
}

// AcceptJoinRequest: лидер принимает заявку.
func (s *TeamService) AcceptJoinRequest(ctx context.Context, teamID, userID, actorID string) (model.Membership, error) {
	team, err := s.leaderTeam(ctx, teamID, actorID)
	if err != nil {
		return model.Membership{}, err
	}
	return s.accept(ctx, team, userID, model.MemberTypeJoinRequest)
}

// RejectJoinRequest: лидер отклоняет заявку; строка удаляется.
func (s *TeamService) RejectJoinRequest(ctx context.Context, teamID, userID, actorID string) error {
	if _, err := s.leaderTeam(ctx, teamID, actorID); err != nil {
		return err
	}
	return s.deletePending(ctx, teamID, userID, model.MemberTypeJoinRequest)
}

// UserAcceptInvite: приглашённый принимает приглашение.
func (s *TeamService) UserAcceptInvite(ctx context.Context, teamID, userID string) (model.Membership, error) {
	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return model.Membership{}, err
	}
	return s.accept(ctx, team, userID, model.MemberTypeInvite)
}

// UserRejectInvite: приглашённый отклоняет приглашение; строка удаляется.
func (s *TeamService) UserRejectInvite(ctx context.Context, teamID, userID string) error {
	if _, err := s.getTeam(ctx, teamID); err != nil {
		return err
	}
	return s.deletePending(ctx, teamID, userID, model.MemberTypeInvite)
}

// accept реализует общий путь перехода в accepted для обоих сценариев.
// Подсчёт принятых и смена статуса выполняются под блокировкой команды.
func (s *TeamService) accept(ctx context.Context, team model.Team, userID string, memberType model.MemberType) (model.Membership, error) {
	if userID == "" {
		return model.Membership{}, ErrBadRequest("user_id is required")
	}
	unlock, err := s.locker.Lock(ctx, lock.TeamKey(team.TeamID))
	if err != nil {
		return model.Membership{}, ErrInternal("failed to lock team", err)
	}
	defer unlock()

	// лидер занимает одно место вместимости
	m, err := s.teams.AcceptMembership(ctx, team.TeamID, userID, memberType, team.TeamType.Capacity()-1)
	if err != nil {
		return model.Membership{}, mapTeamErr(err, "failed to accept membership")
	}
	return m, nil
}

func (s *TeamService) deletePending(ctx context.Context, teamID, userID string, memberType model.MemberType) error {
	if userID == "" {
		return ErrBadRequest("user_id is required")
	}
	if err := s.teams.DeletePendingMembership(ctx, teamID, userID, memberType); err != nil {
		return mapTeamErr(err, "failed to delete membership")
	}
	return nil
}

// RemoveMember: лидер исключает принятого участника. Лидера исключить нельзя.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID, actorID string) error {
	team, err := s.leaderTeam(ctx, teamID, actorID)
	if err != nil {
		return err
	}
	if userID == team.LeaderID {
		return ErrCannotRemoveLeader
	}
	if err := s.teams.DeleteAcceptedMembership(ctx, teamID, userID); err != nil {
		return mapTeamErr(err, "failed to remove member")
	}
	return nil
}

// LeaveTeam: участник выходит из команды. Лидер вместо этого удаляет команду.
func (s *TeamService) LeaveTeam(ctx context.Context, teamID, userID string) error {
	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if userID == team.LeaderID {
		return ErrLeaderCannotLeave
	}
	if err := s.teams.DeleteAcceptedMembership(ctx, teamID, userID); err != nil {
		return mapTeamErr(err, "failed to leave team")
	}
	return nil
}

// DeleteTeam удаляет команду со всеми членствами. Только лидер.
func (s *TeamService) DeleteTeam(ctx context.Context, teamID, actorID string) error {
	if _, err := s.leaderTeam(ctx, teamID, actorID); err != nil {
		return err
	}
	if err := s.teams.DeleteTeam(ctx, teamID); err != nil {
		return mapTeamErr(err, "failed to delete team")
	}
	return nil
}

// UpdateTeam меняет название команды. Только лидер.
func (s *TeamService) UpdateTeam(ctx context.Context, teamID, actorID, teamName string) (model.Team, error) {
	name, err := validateTeamName(teamName)
	if err != nil {
		return model.Team{}, err
	}
	if _, err := s.leaderTeam(ctx, teamID, actorID); err != nil {
		return model.Team{}, err
	}
	team, err := s.teams.UpdateTeam(ctx, teamID, model.TeamUpdate{TeamName: &name})
	if err != nil {
		return model.Team{}, mapTeamErr(err, "failed to update team")
	}
	return team, nil
}

// UpdateLogo сохраняет ссылку на логотип из внешнего хранилища. Только лидер.
func (s *TeamService) UpdateLogo(ctx context.Context, teamID, actorID, logoRef string) (model.Team, error) {
	ref := strings.TrimSpace(logoRef)
	if _, err := s.leaderTeam(ctx, teamID, actorID); err != nil {
		return model.Team{}, err
	}
	team, err := s.teams.UpdateTeam(ctx, teamID, model.TeamUpdate{LogoRef: &ref})
	if err != nil {
		return model.Team{}, mapTeamErr(err, "failed to update logo")
	}
	return team, nil
}

// ListMyTeams возвращает команды, где пользователь лидер или принятый участник.
func (s *TeamService) ListMyTeams(ctx context.Context, userID string) ([]model.Team, error) {
	if userID == "" {
		return nil, ErrBadRequest("user_id is required")
	}
	teams, err := s.teams.ListTeamsForUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal("failed to list teams", err)
	}
	return teams, nil
}

func (s *TeamService) ListPendingInvites(ctx context.Context, userID string) ([]model.PendingInvite, error) {
	if userID == "" {
		return nil, ErrBadRequest("user_id is required")
	}
	invites, err := s.teams.ListPendingInvites(ctx, userID)
	if err != nil {
		return nil, ErrInternal("failed to list invites", err)
	}
	return invites, nil
}

// GetTeamDetails возвращает команду с членствами в порядке добавления.
func (s *TeamService) GetTeamDetails(ctx context.Context, teamID string) (model.TeamDetails, error) {
	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return model.TeamDetails{}, err
	}
	members, err := s.teams.ListMemberships(ctx, teamID)
	if err != nil {
		return model.TeamDetails{}, ErrInternal("failed to list members", err)
	}

	accepted := 1
	for _, m := range members {
		if m.Status == model.MembershipAccepted {
			accepted++
		}
	}
	return model.TeamDetails{
		Team:          team,
		Members:       members,
		AcceptedCount: accepted,
		Capacity:      team.TeamType.Capacity(),
	}, nil
}

func (s *TeamService) getTeam(ctx context.Context, teamID string) (model.Team, error) {
	if teamID == "" {
		return model.Team{}, ErrBadRequest("team_id is required")
	}
	team, err := s.teams.GetTeam(ctx, teamID)
	if err != nil {
		return model.Team{}, mapTeamErr(err, "failed to get team")
	}
	return team, nil
}

// leaderTeam загружает команду и проверяет, что actorID является её лидером.
func (s *TeamService) leaderTeam(ctx context.Context, teamID, actorID string) (model.Team, error) {
	team, err := s.getTeam(ctx, teamID)
	if err != nil {
		return model.Team{}, err
	}
	if actorID == "" || team.LeaderID != actorID {
		return model.Team{}, ErrNotAuthorized
	}
	return team, nil
}

func validateTeamName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < minTeamName || n > maxTeamName {
		return "", ErrBadRequest("team_name must be between 3 and 50 characters")
	}
	return name, nil
}

func mapTeamErr(err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repository.ErrMembershipNotFound):
		return ErrMembershipNotFound
	case errors.Is(err, repository.ErrMembershipExists):
		return ErrAlreadyMember
	case errors.Is(err, repository.ErrTeamFull):
		return ErrTeamFull
	default:
		return ErrInternal(msg, err)
	}
}
