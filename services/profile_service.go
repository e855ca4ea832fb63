package services

import (
	"context"
	"fmt"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/utils"
)

type ProfileService struct {
	store *repository.Store
}

func NewProfileService(store *repository.Store) *ProfileService {
	return &ProfileService{store: store}
}

// Get returns the admin profile, creating the default one on first use.
func (s *ProfileService) Get(ctx context.Context) (*models.Admin, error) {
	return s.store.Admins.Ensure(ctx, models.DefaultAdmin())
}

// Update merges the non-empty fields of in into the profile. An avatar key is
// always applied; an empty string clears the picture.
func (s *ProfileService) Update(ctx context.Context, in models.UpdateAdmin) (*models.Admin, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Email != "" {
		fields["email"] = in.Email
	}
	if in.Phone != "" {
		fields["phone"] = in.Phone
	}
	if in.Role != "" {
		fields["role"] = in.Role
	}
	if in.Avatar != nil {
		avatar, err := utils.ShrinkAvatar(*in.Avatar, utils.AvatarMaxSide)
		if err != nil {
			return nil, fmt.Errorf("%w: avatar: %v", ErrInvalidInput, err)
		}
		fields["avatar"] = avatar
	}
	if len(fields) == 0 {
		return current, nil
	}
	return s.store.Admins.Update(ctx, fields)
}
