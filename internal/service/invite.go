package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/logger"
	"fundledger-backend/internal/repository"
	"fundledger-backend/internal/security"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type inviteService struct {
	inviteRepo     repository.InviteRepository
	memberRepo     repository.MemberRepository
	departmentRepo repository.DepartmentRepository
	userRepo       repository.UserRepository
	referenceSvc   ReferenceService
	tokens         security.TokenManager
	notifier       Notifier
	baseURL        string
}

func NewInviteService(
	inviteRepo repository.InviteRepository,
	memberRepo repository.MemberRepository,
	departmentRepo repository.DepartmentRepository,
	userRepo repository.UserRepository,
	referenceSvc ReferenceService,
	tokens security.TokenManager,
	notifier Notifier,
	baseURL string,
) InviteService {
	return &inviteService{
		inviteRepo:     inviteRepo,
		memberRepo:     memberRepo,
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
		referenceSvc:   referenceSvc,
		tokens:         tokens,
		notifier:       notifier,
		baseURL:        baseURL,
	}
}

func (s *inviteService) CreateLink(ctx context.Context, departmentID, createdBy int32, expiresOn *time.Time, maxUses *int32, email string) (*domain.InviteLink, error) {
	if _, err := s.departmentRepo.GetByID(ctx, departmentID); err != nil {
		return nil, err
	}
	if maxUses != nil && *maxUses < 1 {
		return nil, domain.E(domain.KindInvalid, "max_uses must be at least 1")
	}

	link := &domain.InviteLink{
		Code:         strings.ReplaceAll(uuid.NewString(), "-", ""),
		DepartmentID: departmentID,
		CreatedBy:    createdBy,
		ExpiresOn:    expiresOn,
		MaxUses:      maxUses,
	}
	if err := s.inviteRepo.Create(ctx, link); err != nil {
		return nil, domain.Internal(err)
	}

	if email != "" {
		url := fmt.Sprintf("%s/invites/%s", s.baseURL, link.Code)
		if err := s.notifier.SendInvite(ctx, email, link.Code, url); err != nil {
			logger.Warn("failed to send invite email", "code", link.Code, "error", err)
		}
	}
	return link, nil
}

func (s *inviteService) Validate(ctx context.Context, code string) (*domain.InviteLink, error) {
	link, err := s.inviteRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := s.checkRedeemable(link); err != nil {
		return nil, err
	}
	return link, nil
}

// Accept redeems the invite: it resolves the caller's identity (session
// token first, otherwise fresh credentials), upserts the organization
// membership, creates the department membership with a new payment
// reference, and consumes one use of the link.
func (s *inviteService) Accept(ctx context.Context, input AcceptInviteInput) (*AcceptInviteResult, error) {
	link, err := s.inviteRepo.GetByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if err := s.checkRedeemable(link); err != nil {
		return nil, err
	}

	dept, err := s.departmentRepo.GetByID(ctx, link.DepartmentID)
	if err != nil {
		return nil, err
	}

	user, accessToken, refreshToken, err := s.resolveIdentity(ctx, input)
	if err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.GetOrgMembership(ctx, user.ID, dept.OrgID); err != nil {
		if !domain.IsKind(err, domain.KindNotFound) {
			return nil, err
		}
		membership := &domain.OrgMembership{UserID: user.ID, OrgID: dept.OrgID, Role: domain.MemberRoleMember}
		if err := s.memberRepo.CreateOrgMembership(ctx, membership); err != nil {
			return nil, err
		}
	}

	member, err := s.memberRepo.GetMember(ctx, user.ID, dept.ID)
	if err != nil {
		if !domain.IsKind(err, domain.KindNotFound) {
			return nil, err
		}
		ref, err := s.referenceSvc.GenerateReference(ctx, dept.ID)
		if err != nil {
			return nil, err
		}
		member = &domain.DepartmentMember{
			UserID:           user.ID,
			DepartmentID:     dept.ID,
			Role:             domain.MemberRoleMember,
			PaymentReference: ref,
		}
		if err := s.memberRepo.CreateMember(ctx, member); err != nil {
			return nil, err
		}
	}

	consumed, err := s.inviteRepo.ConsumeUse(ctx, link.ID)
	if err != nil {
		return nil, domain.Internal(err)
	}
	if !consumed {
		// A concurrent redemption took the last use.
		return nil, domain.E(domain.KindConflict, "invite link has been exhausted")
	}

	return &AcceptInviteResult{
		User:         user,
		Member:       member,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *inviteService) checkRedeemable(link *domain.InviteLink) error {
	if !link.IsActive {
		return domain.E(domain.KindNotFound, "invite link is no longer active")
	}
	if link.ExpiresOn != nil && time.Now().After(*link.ExpiresOn) {
		return domain.E(domain.KindExpired, "invite link has expired")
	}
	if link.MaxUses != nil && link.UsedCount >= *link.MaxUses {
		return domain.E(domain.KindConflict, "invite link has been exhausted")
	}
	return nil
}

func (s *inviteService) resolveIdentity(ctx context.Context, input AcceptInviteInput) (*domain.User, string, string, error) {
	if input.Token != "" {
		claims, err := s.tokens.ValidateToken(input.Token)
		if err != nil {
			return nil, "", "", domain.E(domain.KindInvalid, "invalid session token")
		}
		user, err := s.userRepo.GetByID(ctx, claims.UserID)
		if err != nil {
			return nil, "", "", err
		}
		return user, "", "", nil
	}

	if input.Email == "" || input.Password == "" {
		return nil, "", "", domain.E(domain.KindInvalid, "email and password are required")
	}

	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, "", "", domain.E(domain.KindConflict, "email is already registered")
	} else if !domain.IsKind(err, domain.KindNotFound) {
		return nil, "", "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", domain.Internal(err)
	}

	user := &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", domain.Internal(err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, "", "", domain.Internal(err)
	}
	return user, access, refresh, nil
}
