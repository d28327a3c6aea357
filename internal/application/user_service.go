package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blog/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
)

const avatarFolder = "avatars"

type UserService struct {
	Repo    repo.UserRepository
	Storage ObjectStorage
	Logger  *logrus.Logger
}

func NewUserService(r repo.UserRepository, storage ObjectStorage, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Storage: storage, Logger: logger}
}

func (s *UserService) get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperror.NotFound(msgUserNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}

// GetPublic returns the public author view of a user.
func (s *UserService) GetPublic(ctx context.Context, id string) (*entity.Author, error) {
	u, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.Author(), nil
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*entity.User, error) {
	return s.get(ctx, id)
}

// ProfileInput carries optional profile changes. Nil fields are left untouched.
type ProfileInput struct {
	Username  *string
	Firstname *string
	Lastname  *string
	Email     *string
	Avatar    *helpers.ImageUpload
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*entity.User, error) {
	u, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		u.Username = helpers.SanitizeText(*in.Username)
	}
	if in.Firstname != nil {
		u.Firstname = helpers.SanitizeText(*in.Firstname)
	}
	if in.Lastname != nil {
		u.Lastname = helpers.SanitizeText(*in.Lastname)
	}
	if in.Email != nil {
		u.Email = *in.Email
	}

	oldObject := ""
	if in.Avatar != nil {
		obj, err := s.Storage.Put(ctx, avatarFolder, in.Avatar.Filename, in.Avatar.ContentType, in.Avatar.Reader())
		if err != nil {
			return nil, apperror.Internal(err)
		}
		oldObject = u.AvatarObject
		u.AvatarURL = obj.URL
		u.AvatarObject = obj.Object
		u.AvatarImageName = obj.Name
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		if in.Avatar != nil {
			s.removeObject(ctx, u.AvatarObject)
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		return nil, duplicateError(err)
	}
	s.removeObject(ctx, oldObject)
	return u, nil
}

func (s *UserService) removeObject(ctx context.Context, object string) {
	if object == "" {
		return
	}
	if err := s.Storage.Remove(ctx, object); err != nil {
		s.Logger.WithError(err).WithField("object", object).Warn("delete stored image failed")
	}
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

func (s *UserService) ChangePassword(ctx context.Context, id string, in ChangePasswordInput) error {
	if in.CurrentPassword == "" || in.NewPassword == "" || in.ConfirmPassword == "" {
		return apperror.Validation(msgValidation, "Tous les champs sont obligatoires")
	}
	if in.NewPassword != in.ConfirmPassword {
		return apperror.Validation(msgValidation, "Les mots de passe ne correspondent pas")
	}
	if len(in.NewPassword) < 6 {
		return apperror.Validation(msgValidation, "Le mot de passe doit contenir au moins 6 caractères")
	}

	u, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !helpers.CheckPassword(u.PasswordHash, in.CurrentPassword) {
		return apperror.Unauthorized("Le mot de passe actuel est incorrect")
	}
	hash, err := helpers.HashPassword(in.NewPassword)
	if err != nil {
		return apperror.Internal(err)
	}
	if err := s.Repo.UpdatePassword(ctx, id, hash); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
