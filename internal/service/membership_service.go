package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/yourusername/assessment-api/internal/domain/entity"
	"github.com/yourusername/assessment-api/internal/domain/repository"
	apperrors "github.com/yourusername/assessment-api/internal/pkg/errors"
)

// MembershipService управляет заявками, приглашениями, членствами и ролями
// внутри компаний
type MembershipService struct {
	userRepo       repository.UserRepository
	companyRepo    repository.CompanyRepository
	membershipRepo repository.MembershipRepository
	requestRepo    repository.CompanyRequestRepository
	roleRepo       repository.CompanyRoleRepository
	emailService   EmailService
}

// NewMembershipService создает новый сервис членств
func NewMembershipService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	membershipRepo repository.MembershipRepository,
	requestRepo repository.CompanyRequestRepository,
	roleRepo repository.CompanyRoleRepository,
	emailService EmailService,
) *MembershipService {
	return &MembershipService{
		userRepo:       userRepo,
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		requestRepo:    requestRepo,
		roleRepo:       roleRepo,
		emailService:   emailService,
	}
}

// requireManager проверяет, что действующий пользователь — владелец или
// администратор компании
func (s *MembershipService) requireManager(actorID, companyID uint) error {
	role, err := s.roleRepo.GetActive(actorID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("user %d has no management role in company %d: %w", actorID, companyID, apperrors.ErrForbidden)
		}
		return err
	}
	if !role.CanManageQuizzes() {
		return fmt.Errorf("user %d has no management role in company %d: %w", actorID, companyID, apperrors.ErrForbidden)
	}
	return nil
}

// hasActiveMembership проверяет наличие активного членства пары (user, company)
func (s *MembershipService) hasActiveMembership(userID, companyID uint) (bool, error) {
	membership, err := s.membershipRepo.Get(userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return membership.IsActive, nil
}

// createRequest создает заявку или приглашение с общими проверками:
// компания активна, пользователь существует, нет активного членства
// и нет ожидающей заявки
func (s *MembershipService) createRequest(userID, companyID uint, createdBy string) (*entity.CompanyRequest, error) {
	company, err := s.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if !company.IsActive {
		return nil, fmt.Errorf("company %d is not active: %w", companyID, apperrors.ErrNotFound)
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}

	isMember, err := s.hasActiveMembership(userID, companyID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, fmt.Errorf("user %d is already a member of company %d: %w", userID, companyID, apperrors.ErrConflict)
	}

	if _, err := s.requestRepo.GetPending(userID, companyID); err == nil {
		return nil, fmt.Errorf("pending request for user %d and company %d already exists: %w", userID, companyID, apperrors.ErrConflict)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	request := &entity.CompanyRequest{
		UserID:    userID,
		CompanyID: companyID,
		Status:    entity.RequestStatusPending,
		CreatedBy: createdBy,
	}
	if err := s.requestRepo.Create(request); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return request, nil
}

// Apply создает заявку пользователя на вступление в компанию
func (s *MembershipService) Apply(userID, companyID uint) (*entity.CompanyRequest, error) {
	request, err := s.createRequest(userID, companyID, entity.RequestCreatedByUser)
	if err != nil {
		return nil, err
	}
	log.Printf("[MembershipService] Заявка ID=%d: пользователь ID=%d → компания ID=%d",
		request.ID, userID, companyID)
	return request, nil
}

// Invite создает приглашение пользователя в компанию.
// Разрешено владельцу и администраторам; письмо отправляется best-effort.
func (s *MembershipService) Invite(ctx context.Context, actorID, companyID, inviteeID uint) (*entity.CompanyRequest, error) {
	if err := s.requireManager(actorID, companyID); err != nil {
		return nil, err
	}

	request, err := s.createRequest(inviteeID, companyID, entity.RequestCreatedByCompany)
	if err != nil {
		return nil, err
	}

	log.Printf("[MembershipService] Приглашение ID=%d: компания ID=%d → пользователь ID=%d",
		request.ID, companyID, inviteeID)

	if s.emailService != nil {
		invitee, userErr := s.userRepo.GetByID(inviteeID)
		company, companyErr := s.companyRepo.GetByID(companyID)
		if userErr == nil && companyErr == nil {
			idempotencyKey := fmt.Sprintf("invite-%d", request.ID)
			if mailErr := s.emailService.SendInvitation(ctx, invitee.Email, company.Name, idempotencyKey); mailErr != nil {
				log.Printf("[MembershipService] Предупреждение: письмо-приглашение ID=%d не отправлено: %v",
					request.ID, mailErr)
			}
		}
	}

	return request, nil
}

// Accept принимает ожидающую заявку или приглашение.
// Приглашение принимает только приглашенный пользователь, заявку —
// владелец или администратор компании. Принятие создает активное членство
// и роль участника.
func (s *MembershipService) Accept(actorID, requestID uint) error {
	request, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return err
	}
	if !request.IsPending() {
		return fmt.Errorf("request %d is not pending: %w", requestID, apperrors.ErrValidation)
	}

	if request.IsInvite() {
		if actorID != request.UserID {
			return fmt.Errorf("only the invited user can accept invite %d: %w", requestID, apperrors.ErrForbidden)
		}
	} else {
		if err := s.requireManager(actorID, request.CompanyID); err != nil {
			return err
		}
	}

	if err := s.requestRepo.UpdateStatus(requestID, entity.RequestStatusAccepted); err != nil {
		return err
	}

	membership := &entity.CompanyMembership{
		UserID:    request.UserID,
		CompanyID: request.CompanyID,
		IsOwner:   false,
		IsActive:  true,
	}
	if err := s.membershipRepo.Save(membership); err != nil {
		return fmt.Errorf("failed to save membership: %w", err)
	}

	role := &entity.CompanyRole{
		UserID:    request.UserID,
		CompanyID: request.CompanyID,
		RoleType:  entity.RoleTypeUser,
		IsActive:  true,
	}
	if err := s.roleRepo.Save(role); err != nil {
		return fmt.Errorf("failed to save member role: %w", err)
	}

	log.Printf("[MembershipService] Заявка ID=%d принята: пользователь ID=%d вступил в компанию ID=%d",
		requestID, request.UserID, request.CompanyID)
	return nil
}

// Decline отклоняет ожидающую заявку или приглашение.
// Правила авторизации те же, что и для Accept.
func (s *MembershipService) Decline(actorID, requestID uint) error {
	request, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return err
	}
	if !request.IsPending() {
		return fmt.Errorf("request %d is not pending: %w", requestID, apperrors.ErrValidation)
	}

	if request.IsInvite() {
		if actorID != request.UserID {
			return fmt.Errorf("only the invited user can decline invite %d: %w", requestID, apperrors.ErrForbidden)
		}
	} else {
		if err := s.requireManager(actorID, request.CompanyID); err != nil {
			return err
		}
	}

	return s.requestRepo.UpdateStatus(requestID, entity.RequestStatusDeclined)
}

// Cancel отзывает ожидающую заявку или приглашение стороной-инициатором:
// заявку — сам пользователь, приглашение — владелец или администратор компании
func (s *MembershipService) Cancel(actorID, requestID uint) error {
	request, err := s.requestRepo.GetByID(requestID)
	if err != nil {
		return err
	}
	if !request.IsPending() {
		return fmt.Errorf("request %d is not pending: %w", requestID, apperrors.ErrValidation)
	}

	if request.IsInvite() {
		if err := s.requireManager(actorID, request.CompanyID); err != nil {
			return err
		}
	} else {
		if actorID != request.UserID {
			return fmt.Errorf("only the author can cancel request %d: %w", requestID, apperrors.ErrForbidden)
		}
	}

	return s.requestRepo.UpdateStatus(requestID, entity.RequestStatusDeactivated)
}

// ListUserRequests возвращает заявки и приглашения пользователя
func (s *MembershipService) ListUserRequests(userID uint) ([]entity.CompanyRequest, error) {
	return s.requestRepo.ListByUser(userID)
}

// ListCompanyRequests возвращает заявки и приглашения компании;
// доступно владельцу и администраторам
func (s *MembershipService) ListCompanyRequests(actorID, companyID uint) ([]entity.CompanyRequest, error) {
	if err := s.requireManager(actorID, companyID); err != nil {
		return nil, err
	}
	return s.requestRepo.ListByCompany(companyID)
}

// ListMembers возвращает активные членства компании
func (s *MembershipService) ListMembers(companyID uint) ([]entity.CompanyMembership, error) {
	if _, err := s.companyRepo.GetByID(companyID); err != nil {
		return nil, err
	}
	return s.membershipRepo.ListActiveByCompany(companyID)
}

// Leave выводит пользователя из компании по его собственному решению.
// Владелец покинуть компанию не может.
func (s *MembershipService) Leave(userID, companyID uint) error {
	membership, err := s.membershipRepo.Get(userID, companyID)
	if err != nil {
		return err
	}
	if membership.IsOwner {
		return fmt.Errorf("the owner cannot leave company %d: %w", companyID, apperrors.ErrForbidden)
	}

	if err := s.membershipRepo.Deactivate(userID, companyID); err != nil {
		return err
	}
	if err := s.roleRepo.Deactivate(userID, companyID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	log.Printf("[MembershipService] Пользователь ID=%d покинул компанию ID=%d", userID, companyID)
	return nil
}

// Remove исключает участника из компании.
// Разрешено владельцу и администраторам; владельца исключить нельзя.
func (s *MembershipService) Remove(actorID, companyID, userID uint) error {
	if err := s.requireManager(actorID, companyID); err != nil {
		return err
	}

	membership, err := s.membershipRepo.Get(userID, companyID)
	if err != nil {
		return err
	}
	if membership.IsOwner {
		return fmt.Errorf("the owner cannot be removed from company %d: %w", companyID, apperrors.ErrForbidden)
	}

	if err := s.membershipRepo.Deactivate(userID, companyID); err != nil {
		return err
	}
	if err := s.roleRepo.Deactivate(userID, companyID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	log.Printf("[MembershipService] Пользователь ID=%d исключен из компании ID=%d пользователем ID=%d",
		userID, companyID, actorID)
	return nil
}

// GrantRole назначает участнику роль admin или user.
// Разрешено только владельцу компании; роль owner не переназначается.
func (s *MembershipService) GrantRole(actorID, companyID, userID uint, roleType string) error {
	company, err := s.companyRepo.GetByID(companyID)
	if err != nil {
		return err
	}
	if company.OwnerID != actorID {
		return fmt.Errorf("only the owner can grant roles in company %d: %w", companyID, apperrors.ErrForbidden)
	}

	if roleType != entity.RoleTypeAdmin && roleType != entity.RoleTypeUser {
		return fmt.Errorf("role %q cannot be granted: %w", roleType, apperrors.ErrValidation)
	}

	isMember, err := s.hasActiveMembership(userID, companyID)
	if err != nil {
		return err
	}
	if !isMember {
		return fmt.Errorf("user %d is not an active member of company %d: %w", userID, companyID, apperrors.ErrNotFound)
	}

	existing, err := s.roleRepo.GetActive(userID, companyID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if existing != nil && existing.RoleType == entity.RoleTypeOwner {
		return fmt.Errorf("the owner role cannot be reassigned: %w", apperrors.ErrForbidden)
	}

	role := &entity.CompanyRole{
		UserID:    userID,
		CompanyID: companyID,
		RoleType:  roleType,
		IsActive:  true,
	}
	if existing != nil {
		role.ID = existing.ID
		role.CreatedAt = existing.CreatedAt
	}
	if err := s.roleRepo.Save(role); err != nil {
		return fmt.Errorf("failed to save role: %w", err)
	}

	log.Printf("[MembershipService] Роль %s назначена пользователю ID=%d в компании ID=%d",
		roleType, userID, companyID)
	return nil
}

// ListAdmins возвращает владельца и администраторов компании
func (s *MembershipService) ListAdmins(companyID uint) ([]entity.CompanyRole, error) {
	roles, err := s.roleRepo.ListActiveByCompany(companyID)
	if err != nil {
		return nil, err
	}
	admins := make([]entity.CompanyRole, 0, len(roles))
	for _, r := range roles {
		if r.CanManageQuizzes() {
			admins = append(admins, r)
		}
	}
	return admins, nil
}
