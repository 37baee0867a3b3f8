package user

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"recruitment-portal/internal/domain/identity"
	"recruitment-portal/internal/domain/user"
	"recruitment-portal/internal/infrastructure/imaging"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	profileDir = "profile_pics"

	// DefaultImagePath is served from the media root when a user has no picture.
	DefaultImagePath = "images/default-profile.svg"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)

type ImageStore interface {
	Save(ctx context.Context, dir, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, ref string) error
	URL(ref string) string
}

type UpdateProfileInput struct {
	FirstName      *string
	LastName       *string
	Phone          *string
	Skills         *string
	WorkExperience *string
	Education      *string
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, caller identity.Caller) (user.User, error)
	UpdateProfile(ctx context.Context, caller identity.Caller, in UpdateProfileInput) (user.User, error)
	GetApplicantProfile(ctx context.Context, poster identity.Poster, applicantID uuid.UUID) (user.User, error)
	UploadProfileImage(ctx context.Context, caller identity.Caller, filename string, r io.Reader) (string, error)
	RemoveProfileImage(ctx context.Context, caller identity.Caller) (string, error)
	PictureURL(u user.User) string
}

type Service struct {
	users  user.Repository
	images ImageStore
	logger *zap.Logger
}

func NewService(users user.Repository, images ImageStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, images: images, logger: logger}
}

func (s *Service) GetProfile(ctx context.Context, caller identity.Caller) (user.User, error) {
	usr, err := s.load(ctx, caller.UserID())
	if err != nil {
		return user.User{}, err
	}
	return sanitizeUser(usr), nil
}

func (s *Service) UpdateProfile(ctx context.Context, caller identity.Caller, in UpdateProfileInput) (user.User, error) {
	usr, err := s.load(ctx, caller.UserID())
	if err != nil {
		return user.User{}, err
	}

	p := user.Profile{
		FirstName:      pick(in.FirstName, usr.FirstName),
		LastName:       pick(in.LastName, usr.LastName),
		Phone:          pick(in.Phone, usr.Phone),
		Skills:         pick(in.Skills, usr.Skills),
		WorkExperience: pick(in.WorkExperience, usr.WorkExperience),
		Education:      pick(in.Education, usr.Education),
	}
	if len(p.FirstName) > 150 || len(p.LastName) > 150 || len(p.Phone) > 20 {
		return user.User{}, ErrInvalidInput
	}

	if err := s.users.UpdateProfile(ctx, usr.ID, p); err != nil {
		return user.User{}, s.fail("update profile", err)
	}
	return s.GetProfile(ctx, caller)
}

// GetApplicantProfile lets a poster view an applicant. A target that is not
// an applicant is reported as not found.
func (s *Service) GetApplicantProfile(ctx context.Context, poster identity.Poster, applicantID uuid.UUID) (user.User, error) {
	usr, err := s.load(ctx, applicantID)
	if err != nil {
		return user.User{}, err
	}
	if !usr.IsApplicant() {
		return user.User{}, ErrNotFound
	}
	return sanitizeUser(usr), nil
}

func (s *Service) UploadProfileImage(ctx context.Context, caller identity.Caller, filename string, r io.Reader) (string, error) {
	if !allowedImage(filename) || r == nil {
		return "", ErrInvalidInput
	}
	usr, err := s.load(ctx, caller.UserID())
	if err != nil {
		return "", err
	}

	thumb, err := imaging.Thumbnail(r, imaging.ThumbnailSize)
	if err != nil {
		return "", ErrInvalidInput
	}

	ref, err := s.images.Save(ctx, profileDir, usr.ID.String()+".png", bytes.NewReader(thumb))
	if err != nil {
		return "", s.fail("store profile image", err)
	}
	if err := s.users.UpdateProfilePicture(ctx, usr.ID, ref); err != nil {
		return "", s.fail("update profile picture", err)
	}
	if usr.ProfilePicture != "" && usr.ProfilePicture != ref {
		if err := s.images.Remove(ctx, usr.ProfilePicture); err != nil {
			s.logger.Warn("remove old profile image failed", zap.String("ref", usr.ProfilePicture), zap.Error(err))
		}
	}
	return s.images.URL(ref), nil
}

func (s *Service) RemoveProfileImage(ctx context.Context, caller identity.Caller) (string, error) {
	usr, err := s.load(ctx, caller.UserID())
	if err != nil {
		return "", err
	}
	if usr.ProfilePicture != "" {
		if err := s.images.Remove(ctx, usr.ProfilePicture); err != nil {
			return "", s.fail("remove profile image", err)
		}
		if err := s.users.UpdateProfilePicture(ctx, usr.ID, ""); err != nil {
			return "", s.fail("clear profile picture", err)
		}
	}
	return s.images.URL(DefaultImagePath), nil
}

func (s *Service) PictureURL(u user.User) string {
	if u.ProfilePicture == "" {
		return s.images.URL(DefaultImagePath)
	}
	return s.images.URL(u.ProfilePicture)
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (user.User, error) {
	if id == uuid.Nil {
		return user.User{}, ErrNotFound
	}
	usr, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return user.User{}, s.fail("get user", err)
	}
	return usr, nil
}

func (s *Service) fail(op string, err error) error {
	if errors.Is(err, user.ErrNotFound) {
		return ErrNotFound
	}
	s.logger.Error("profile operation failed", zap.String("operation", op), zap.Error(err))
	return ErrInternal
}

func allowedImage(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	default:
		return false
	}
}

func pick(v *string, current string) string {
	if v == nil {
		return current
	}
	return strings.TrimSpace(*v)
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
