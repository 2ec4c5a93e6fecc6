package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tcontrol/internal/models"
	"tcontrol/internal/repositories"
)

type OrgService interface {
	CreateOrg(ctx context.Context, org *models.Org, creatorID int64) error
	AddMember(ctx context.Context, m *models.Membership) error
	// IsMember reports whether the user belongs to the org, any role.
	IsMember(ctx context.Context, userID, orgID int64) (bool, error)
	// IsAdmin reports whether the user holds the admin role in the org.
	IsAdmin(ctx context.Context, userID, orgID int64) (bool, error)
}

type orgService struct {
	orgs        repositories.OrgRepository
	memberships repositories.MembershipRepository
}

func NewOrgService(orgs repositories.OrgRepository, memberships repositories.MembershipRepository) OrgService {
	return &orgService{orgs: orgs, memberships: memberships}
}

// CreateOrg создаёт организацию и сразу делает создателя её админом.
func (s *orgService) CreateOrg(ctx context.Context, org *models.Org, creatorID int64) error {
	org.Slug = strings.TrimSpace(strings.ToLower(org.Slug))
	if org.Slug == "" {
		return fmt.Errorf("slug is required")
	}
	if err := s.orgs.Store(ctx, org); err != nil {
		return err
	}
	return s.memberships.Store(ctx, &models.Membership{
		OrgID:  org.ID,
		UserID: creatorID,
		Role:   models.RoleAdmin,
	})
}

func (s *orgService) AddMember(ctx context.Context, m *models.Membership) error {
	if m.Role == "" {
		m.Role = models.RoleMember
	}
	if m.Role != models.RoleAdmin && m.Role != models.RoleMember {
		return fmt.Errorf("unknown role %q", m.Role)
	}
	return s.memberships.Store(ctx, m)
}

func (s *orgService) IsMember(ctx context.Context, userID, orgID int64) (bool, error) {
	_, err := s.memberships.FindRole(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *orgService) IsAdmin(ctx context.Context, userID, orgID int64) (bool, error) {
	role, err := s.memberships.FindRole(ctx, userID, orgID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return role == models.RoleAdmin, nil
}
