package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/models"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/repository"
	"github.com/Mehedimnm/Mehedi-Thai-Aluminium-Glass-sub000/utils"

	"github.com/rs/zerolog/log"
)

// AdminRole is the role carried by every issued token.
const AdminRole = "Admin"

type AuthService struct {
	store  *repository.Store
	secret []byte
}

func NewAuthService(store *repository.Store, jwtSecret string) *AuthService {
	return &AuthService{store: store, secret: []byte(jwtSecret)}
}

// Client identifies where a login came from.
type Client struct {
	IP     string
	Device string
}

// Login checks the credentials against the single user record and returns a signed
// token. Every mismatch, including a missing user, yields ErrWrongPassword.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput, client Client) (string, error) {
	user, err := s.store.Users.FindDefault(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrWrongPassword
	}
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if in.Username != "" && in.Username != user.Username {
		return "", ErrWrongPassword
	}
	ok, rehash := utils.CheckStoredPassword(user.Pass, in.Password)
	if !ok {
		return "", ErrWrongPassword
	}

	if rehash {
		if hash, err := utils.HashPassword(in.Password); err != nil {
			log.Error().Err(err).Msg("hash legacy password")
		} else if err := s.store.Users.SetPassword(ctx, user.ID, hash); err != nil {
			log.Error().Err(err).Msg("upgrade legacy password")
		} else {
			log.Info().Str("user", user.Username).Msg("legacy password upgraded to bcrypt")
		}
	}

	session := &models.Session{
		UserID:    user.ID,
		IP:        client.IP,
		Device:    client.Device,
		Timestamp: time.Now().UTC(),
	}
	if err := s.store.Sessions.Create(ctx, session); err != nil {
		log.Error().Err(err).Msg("record login session")
	}

	token, err := utils.GenerateToken(s.secret, user.ID.Hex(), AdminRole)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return token, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, in models.ChangePasswordInput) error {
	user, err := s.store.Users.FindDefault(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWrongPassword
	}
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if ok, _ := utils.CheckStoredPassword(user.Pass, in.OldPassword); !ok {
		return ErrWrongPassword
	}
	hash, err := utils.HashPassword(in.NewPassword)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if err := s.store.Users.SetPassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	log.Info().Str("user", user.Username).Msg("password changed")
	return nil
}
